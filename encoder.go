package huff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Encoder builds a code table for a buffer and encodes the buffer with it.
// An Encoder holds only configuration and may be shared.
type Encoder struct {
	config Config
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Encode compresses data into a Container.
func (e *Encoder) Encode(data []byte) (*Container, error) {
	format := resolveEncodeFormat(e.config)
	hist := CountSymbols(data)
	if format == FormatLegacy && hist.Distinct() > legacyMaxSymbols {
		return nil, fmt.Errorf("%w: input uses %d distinct symbols, limit is %d",
			ErrTooManySymbols, hist.Distinct(), legacyMaxSymbols)
	}

	tree := BuildTree(hist)
	table := tree.Codes()
	payload, err := encodePayload(data, table, tree.WeightedPathLength())
	if err != nil {
		return nil, err
	}
	return &Container{
		Format:     format,
		Table:      table,
		DecodedLen: uint64(len(data)),
		Payload:    payload,
	}, nil
}

// EncodeTo compresses data and writes the serialized container to w.
func (e *Encoder) EncodeTo(w io.Writer, data []byte) (int64, error) {
	c, err := e.Encode(data)
	if err != nil {
		return 0, err
	}
	return c.WriteTo(w)
}

// encodePayload concatenates the codes of data in order into one bit
// sequence with a single trailing pad.
func encodePayload(data []byte, table *CodeTable, bits uint64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int((bits + 7) / 8))
	w := bitio.NewWriter(&buf)
	for i, b := range data {
		code, ok := table.Lookup(b)
		if !ok {
			return nil, fmt.Errorf("no code for symbol %#02x at offset %d", b, i)
		}
		for _, bit := range code {
			if err := w.WriteBool(bit); err != nil {
				return nil, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
