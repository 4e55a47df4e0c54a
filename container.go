package huff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/icza/bitio"
)

const (
	containerMagic   = "HUF1"
	containerVersion = uint8(1)

	framedHeaderLen = len(containerMagic) + 1 + 2 + 8 // magic, version, symbol count, decoded length
	legacyHeaderLen = 1                               // symbol count

	maxSymbols       = 256
	legacyMaxSymbols = 255

	defaultMaxDecodedLen = uint64(1 << 30) // 1 GiB
	maxContainerBytes    = math.MaxInt32   // fits int on 32-bit platforms
)

// Wire format, framed (version 1):
//
//	magic[4]    = "HUF1"
//	version     = uint8
//	symbolCount = uint16 little-endian (0..256)
//	decodedLen  = uint64 little-endian
//	repeat symbolCount times, ascending by symbol:
//	  symbol    = uint8
//	  codeLen   = uint8
//	  code      = codeLen bits MSB-first, zero-padded to a byte boundary
//	payload     = all codes of the input concatenated MSB-first, one trailing pad
//
// Wire format, legacy:
//
//	symbolCount = uint8 (0..255)
//	entries as above
//	payload     = to end of input, no length
//
// The legacy layout carries no payload length, so zero padding at the end of
// the payload may decode as extra symbols.

// Format selects the container layout.
type Format uint8

const (
	// FormatAuto detects the layout from the magic on decode and means
	// FormatFramed on encode.
	FormatAuto Format = iota
	// FormatFramed is the self-delimiting layout with magic, version, a
	// two-byte symbol count and the decoded length.
	FormatFramed
	// FormatLegacy is the bare layout with no magic: a one-byte symbol
	// count, the entries, and a payload terminated by end of input.
	FormatLegacy
)

// String returns the flag name of f.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatFramed:
		return "framed"
	case FormatLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name as returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "framed":
		return FormatFramed, nil
	case "legacy":
		return FormatLegacy, nil
	default:
		return FormatAuto, fmt.Errorf("unknown container format %q", s)
	}
}

// DetectFormat reports the layout of an encoded container by its magic.
// A legacy container that happens to start with "HUF1" (72 symbols, the
// first being 'U' with a 70-bit code) is reported as FormatFramed; decode
// such data with WithFormat(FormatLegacy).
func DetectFormat(src []byte) Format {
	if bytes.HasPrefix(src, []byte(containerMagic)) {
		return FormatFramed
	}
	return FormatLegacy
}

// Container binds a code table to the payload encoded with it.
type Container struct {
	Format Format
	Table  *CodeTable

	// DecodedLen is the number of bytes the payload decodes to. It is stored
	// only in the framed layout; a legacy container read from bytes has 0.
	DecodedLen uint64
	Payload    []byte

	tree *Tree // rebuilt from Table on read, nil until needed otherwise
}

// Symbols returns the number of entries in the code table.
func (c *Container) Symbols() int {
	if c.Table == nil {
		return 0
	}
	return c.Table.Len()
}

// HeaderLen returns the serialized size of everything before the payload.
func (c *Container) HeaderLen() int {
	n := framedHeaderLen
	if c.Format == FormatLegacy {
		n = legacyHeaderLen
	}
	if c.Table == nil {
		return n
	}
	for _, sym := range c.Table.Symbols() {
		code, _ := c.Table.Lookup(sym)
		n += 2 + packedLen(len(code))
	}
	return n
}

// Size returns the serialized size of the container in bytes.
func (c *Container) Size() int {
	return c.HeaderLen() + len(c.Payload)
}

// Lossy reports whether the serialized container cannot reproduce
// DecodedLen bytes. This is the case for a legacy container whose single
// symbol has a zero-length code: the payload is empty and decodes to nothing.
func (c *Container) Lossy() bool {
	return c.Format == FormatLegacy && c.Symbols() == 1 && c.DecodedLen > 0
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

func validateContainer(c *Container) error {
	if c.Table == nil {
		return fmt.Errorf("missing code table")
	}
	switch c.Format {
	case FormatFramed:
		if c.Table.Len() > maxSymbols {
			return fmt.Errorf("symbol count %d exceeds %d", c.Table.Len(), maxSymbols)
		}
	case FormatLegacy:
		if c.Table.Len() > legacyMaxSymbols {
			return fmt.Errorf("%w: %d symbols, limit is %d", ErrTooManySymbols, c.Table.Len(), legacyMaxSymbols)
		}
	default:
		return fmt.Errorf("unsupported container format: %s", c.Format)
	}
	if c.Table.Len() == 0 && (len(c.Payload) != 0 || c.DecodedLen != 0) {
		return fmt.Errorf("payload without code table")
	}
	if _, err := c.Table.tree(); err != nil {
		return err
	}
	return nil
}

// WriteTo serializes the container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	if err := validateContainer(c); err != nil {
		return 0, fmt.Errorf("invalid container: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(c.Size())
	switch c.Format {
	case FormatFramed:
		var hdr [framedHeaderLen]byte
		copy(hdr[:4], containerMagic)
		hdr[4] = containerVersion
		binary.LittleEndian.PutUint16(hdr[5:7], uint16(c.Table.Len()))
		binary.LittleEndian.PutUint64(hdr[7:15], c.DecodedLen)
		buf.Write(hdr[:])
	case FormatLegacy:
		buf.WriteByte(byte(c.Table.Len()))
	}

	bw := bitio.NewWriter(&buf)
	for _, sym := range c.Table.Symbols() {
		code, _ := c.Table.Lookup(sym)
		if err := bw.WriteByte(sym); err != nil {
			return 0, err
		}
		if err := bw.WriteByte(byte(len(code))); err != nil {
			return 0, err
		}
		if err := packBits(bw, code); err != nil {
			return 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	buf.Write(c.Payload)

	return writeBytes(w, buf.Bytes())
}

// ReadFrom deserializes a container from r, reading r to EOF. When c.Format
// is FormatAuto the layout is detected from the magic.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxContainerBytes+1))
	total := int64(len(data))
	if err != nil {
		return total, fmt.Errorf("read container: %w", err)
	}
	if len(data) > maxContainerBytes {
		return total, fmt.Errorf("%w: container larger than %d bytes", ErrFormat, maxContainerBytes)
	}

	h, err := parseHeader(data, c.Format, defaultMaxDecodedLen)
	if err != nil {
		return total, err
	}
	tree, err := h.table.tree()
	if err != nil {
		return total, fmt.Errorf("rebuild tree from %d entries at offset %d: %w", h.count, h.entriesOffset, err)
	}
	*c = *h.container(data, tree)
	return total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Container) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Container) UnmarshalBinary(data []byte) error {
	_, err := c.ReadFrom(bytes.NewReader(data))
	return err
}

// AppendAll decodes the payload and appends the result to dst.
func (c *Container) AppendAll(dst []byte) ([]byte, error) {
	if c.Table == nil {
		return dst, fmt.Errorf("%w: missing code table", ErrFormat)
	}
	tree := c.tree
	if tree == nil {
		var err error
		if tree, err = c.Table.tree(); err != nil {
			return dst, err
		}
	}
	switch c.Format {
	case FormatFramed:
		return decodeFramed(dst, tree, c.Payload, c.DecodedLen)
	case FormatLegacy:
		return decodeLegacy(dst, tree, c.Payload)
	default:
		return dst, fmt.Errorf("unsupported container format: %s", c.Format)
	}
}

// header is the parsed prefix of a container up to the payload.
type header struct {
	format        Format
	count         int
	decodedLen    uint64
	table         *CodeTable
	entriesOffset int
	entries       []byte // raw entry bytes, used as table cache key
	payloadOffset int
}

func (h header) container(data []byte, tree *Tree) *Container {
	return &Container{
		Format:     h.format,
		Table:      h.table,
		DecodedLen: h.decodedLen,
		Payload:    data[h.payloadOffset:],
		tree:       tree,
	}
}

func parseHeader(data []byte, format Format, maxDecodedLen uint64) (header, error) {
	if format == FormatAuto {
		format = DetectFormat(data)
	}
	switch format {
	case FormatFramed:
		return parseFramedHeader(data, maxDecodedLen)
	case FormatLegacy:
		return parseLegacyHeader(data)
	default:
		return header{}, fmt.Errorf("unsupported container format: %s", format)
	}
}

func parseFramedHeader(data []byte, maxDecodedLen uint64) (header, error) {
	if len(data) < framedHeaderLen {
		return header{}, fmt.Errorf("%w: header truncated at offset 0: need %d bytes, have %d",
			ErrFormat, framedHeaderLen, len(data))
	}
	if string(data[:4]) != containerMagic {
		return header{}, fmt.Errorf("%w: invalid magic at offset 0: %q", ErrFormat, string(data[:4]))
	}
	if data[4] != containerVersion {
		return header{}, fmt.Errorf("%w: unsupported version at offset 4: %d", ErrFormat, data[4])
	}
	count := int(binary.LittleEndian.Uint16(data[5:7]))
	if count > maxSymbols {
		return header{}, fmt.Errorf("%w: invalid symbol count at offset 5: %d", ErrFormat, count)
	}
	decodedLen := binary.LittleEndian.Uint64(data[7:15])
	if decodedLen > maxDecodedLen {
		return header{}, fmt.Errorf("%w: decoded length at offset 7 too large: %d (limit %d)",
			ErrFormat, decodedLen, maxDecodedLen)
	}
	if count == 0 && decodedLen != 0 {
		return header{}, fmt.Errorf("%w: decoded length %d with empty code table", ErrFormat, decodedLen)
	}

	table, end, err := readEntries(data, framedHeaderLen, count)
	if err != nil {
		return header{}, err
	}
	return header{
		format:        FormatFramed,
		count:         count,
		decodedLen:    decodedLen,
		table:         table,
		entriesOffset: framedHeaderLen,
		entries:       data[framedHeaderLen:end],
		payloadOffset: end,
	}, nil
}

// readEntries parses count table entries starting at offset. Each entry's
// code is read with its own bit reader call, so entries are byte-aligned.
func readEntries(data []byte, offset, count int) (*CodeTable, int, error) {
	rest := data[offset:]
	br := bytes.NewReader(rest)
	r := bitio.NewReader(br)
	pos := func() int { return offset + len(rest) - br.Len() }

	table := &CodeTable{}
	prev := -1
	for i := 0; i < count; i++ {
		entryOffset := pos()
		if br.Len() < 2 {
			return nil, 0, fmt.Errorf("%w: entry %d of %d truncated at offset %d",
				ErrFormat, i, count, entryOffset)
		}
		sym, _ := r.ReadByte()
		length, _ := r.ReadByte()
		if int(sym) <= prev {
			return nil, 0, fmt.Errorf("%w: entry %d symbol %#02x out of order at offset %d",
				ErrFormat, i, sym, entryOffset)
		}
		prev = int(sym)
		if length == 0 && count != 1 {
			return nil, 0, fmt.Errorf("%w: entry %d symbol %#02x has zero-length code at offset %d",
				ErrFormat, i, sym, entryOffset)
		}
		if packedLen(int(length)) > br.Len() {
			return nil, 0, fmt.Errorf("%w: entry %d code of %d bits truncated at offset %d: have %d bytes",
				ErrFormat, i, length, entryOffset+2, br.Len())
		}
		bits, err := readBits(r, int(length))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: entry %d code at offset %d: %v", ErrFormat, i, entryOffset+2, err)
		}
		table.Set(sym, Code(bits))
	}
	return table, pos(), nil
}

// decodeFramed walks exactly n symbols out of payload and rejects any bytes
// past the last one used.
func decodeFramed(dst []byte, t *Tree, payload []byte, n uint64) ([]byte, error) {
	if n == 0 {
		if len(payload) != 0 {
			return dst, fmt.Errorf("%w: %d trailing payload bytes", ErrFormat, len(payload))
		}
		return dst, nil
	}
	if t.Empty() {
		return dst, fmt.Errorf("%w: decoded length %d with empty code table", ErrFormat, n)
	}
	if n > math.MaxInt {
		return dst, fmt.Errorf("%w: decoded length %d does not fit in memory", ErrFormat, n)
	}
	if t.isLeaf(t.root) {
		if len(payload) != 0 {
			return dst, fmt.Errorf("%w: %d trailing payload bytes", ErrFormat, len(payload))
		}
		return append(dst, bytes.Repeat([]byte{t.symbolAt(t.root)}, int(n))...), nil
	}
	// Every symbol of a multi-symbol tree costs at least one bit.
	if n > uint64(len(payload))*8 {
		return dst, fmt.Errorf("%w: decoded length %d exceeds payload of %d bits",
			ErrFormat, n, uint64(len(payload))*8)
	}

	dst = slices.Grow(dst, int(n))
	br := bytes.NewReader(payload)
	r := bitio.NewReader(br)
	var bitPos uint64
	for i := uint64(0); i < n; i++ {
		cur := t.root
		for !t.isLeaf(cur) {
			bit, err := r.ReadBool()
			if err != nil {
				return dst, fmt.Errorf("%w: payload truncated at bit %d (symbol %d of %d)", ErrFormat, bitPos, i, n)
			}
			next := t.child(cur, bit)
			if next == noChild {
				return dst, fmt.Errorf("%w at payload bit %d (symbol %d)", ErrMalformedTraversal, bitPos, i)
			}
			cur = next
			bitPos++
		}
		dst = append(dst, t.symbolAt(cur))
	}
	r.Align()
	if br.Len() != 0 {
		return dst, fmt.Errorf("%w: %d trailing payload bytes after bit %d", ErrFormat, br.Len(), bitPos)
	}
	return dst, nil
}
