package huff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

func parseLegacyHeader(data []byte) (header, error) {
	if len(data) < legacyHeaderLen {
		return header{}, fmt.Errorf("%w: header truncated at offset 0: need %d bytes, have %d",
			ErrFormat, legacyHeaderLen, len(data))
	}
	count := int(data[0])
	table, end, err := readEntries(data, legacyHeaderLen, count)
	if err != nil {
		return header{}, err
	}
	return header{
		format:        FormatLegacy,
		count:         count,
		table:         table,
		entriesOffset: legacyHeaderLen,
		entries:       data[legacyHeaderLen:end],
		payloadOffset: end,
	}, nil
}

// decodeLegacy walks payload bit by bit until it is exhausted, emitting a
// symbol at every leaf. Without a stored length, pad bits that complete a
// code are emitted as symbols and an incomplete code at the end is dropped.
func decodeLegacy(dst []byte, t *Tree, payload []byte) ([]byte, error) {
	r := bitio.NewReader(bytes.NewReader(payload))
	cur := t.root
	for bitPos := 0; ; bitPos++ {
		bit, err := r.ReadBool()
		if errors.Is(err, io.EOF) {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
		next := t.child(cur, bit)
		if next == noChild {
			return dst, fmt.Errorf("%w at payload bit %d", ErrMalformedTraversal, bitPos)
		}
		cur = next
		if t.isLeaf(cur) {
			dst = append(dst, t.symbolAt(cur))
			cur = t.root
		}
	}
}
