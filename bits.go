package huff

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// packedLen returns the number of bytes needed to hold bits bits.
func packedLen(bits int) int {
	return (bits + 7) / 8
}

// PackBits packs bits most-significant-bit first into a fresh byte slice. A
// trailing partial byte is left-aligned and zero-padded.
func PackBits(bits []bool) []byte {
	var buf bytes.Buffer
	buf.Grow(packedLen(len(bits)))
	w := bitio.NewWriter(&buf)
	// Writes into a bytes.Buffer cannot fail.
	_ = packBits(w, bits)
	_ = w.Close()
	return buf.Bytes()
}

// UnpackBits reads n bits most-significant-bit first from data.
func UnpackBits(data []byte, n int) ([]bool, error) {
	if n < 0 || n > len(data)*8 {
		return nil, fmt.Errorf("%w: need %d bits, have %d", ErrFormat, n, len(data)*8)
	}
	return readBits(bitio.NewReader(bytes.NewReader(data)), n)
}

// packBits writes bits and pads to the next byte boundary, so every call
// starts and ends on a byte boundary of the underlying stream.
func packBits(w *bitio.Writer, bits []bool) error {
	for _, bit := range bits {
		if err := w.WriteBool(bit); err != nil {
			return err
		}
	}
	_, err := w.Align()
	return err
}

// readBits reads n bits and discards the rest of the last byte it touched,
// so every call starts on a byte boundary of the underlying stream.
func readBits(r *bitio.Reader, n int) ([]bool, error) {
	bits := make([]bool, n)
	for i := range bits {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		bits[i] = bit
	}
	r.Align()
	return bits, nil
}
