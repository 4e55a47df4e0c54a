// Package huff implements static Huffman coding of byte buffers in a
// self-describing container.
//
// # Overview
//
// An Encoder counts the byte values of a buffer, builds a Huffman tree over
// the values that occur, derives one prefix-free code per value, and writes a
// container holding the code table followed by the packed payload. A Decoder
// reads the table back, rebuilds the tree directly from the codes, and walks
// the payload through it. No dictionary is shared between the two sides.
//
// # Basic Usage
//
//	packed, err := huff.Compress(data)
//	if err != nil {
//	    return err
//	}
//	original, err := huff.Decompress(packed)
//
// # Determinism
//
// Tree construction breaks weight ties by insertion order (leaves in ascending
// symbol order, combined nodes in creation order), so the same input always
// produces byte-identical output.
//
// # Formats
//
// FormatFramed (the default) starts with the magic "HUF1", stores a two-byte
// symbol count and the decoded length, and rejects trailing data. It
// represents every input, including ones that use all 256 byte values.
//
// FormatLegacy is the bare layout written by earlier versions of the tool: a
// one-byte symbol count and a payload that runs to end of input. It cannot
// hold 256 distinct symbols (Encode returns ErrTooManySymbols), and zero pad
// bits at the end of the payload may decode as extra symbols.
//
// In both layouts each table entry is the symbol, the code length in bits, and
// the code bits packed most-significant-bit first and padded to a byte
// boundary on their own. The payload is one contiguous bit sequence with a
// single trailing pad.
//
// A buffer with a single distinct byte value gets a zero-length code; the
// framed layout restores it from the stored length alone.
package huff
