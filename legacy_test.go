package huff

import (
	"bytes"
	"errors"
	"testing"
)

func allBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestLegacyGolden(t *testing.T) {
	got, err := Compress([]byte("aab"), WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	want := []byte{2, 'a', 1, 0x80, 'b', 1, 0x00, 0xc0}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}

// TestLegacyPadDecodesAsSymbols documents the legacy layout's lack of a
// payload length: the five zero pad bits after "110" each match the code of
// 'b'.
func TestLegacyPadDecodesAsSymbols(t *testing.T) {
	data, err := Compress([]byte("aab"), WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(out) != "aabbbbbb" {
		t.Fatalf("got %q want %q", out, "aabbbbbb")
	}
}

func TestLegacySingleSymbolDecodesEmpty(t *testing.T) {
	data, err := Compress([]byte("zzzz"), WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if want := []byte{1, 'z', 0}; !bytes.Equal(data, want) {
		t.Fatalf("got %x want %x", data, want)
	}
	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestLossy(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		format Format
		want   bool
	}{
		{"legacy single symbol", "zzzz", FormatLegacy, true},
		{"legacy empty", "", FormatLegacy, false},
		{"legacy two symbols", "zzy", FormatLegacy, false},
		{"framed single symbol", "zzzz", FormatFramed, false},
	}
	for _, tc := range cases {
		c, err := NewEncoder(WithFormat(tc.format)).Encode([]byte(tc.data))
		if err != nil {
			t.Fatalf("%s: Encode: %v", tc.name, err)
		}
		if got := c.Lossy(); got != tc.want {
			t.Fatalf("%s: Lossy: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestLegacyEmpty(t *testing.T) {
	data, err := Compress(nil, WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !bytes.Equal(data, []byte{0}) {
		t.Fatalf("got %x want 00", data)
	}
	out, err := Decompress(data, WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestLegacyTooManySymbols(t *testing.T) {
	_, err := Compress(allBytes(256), WithFormat(FormatLegacy))
	if !errors.Is(err, ErrTooManySymbols) {
		t.Fatalf("expected ErrTooManySymbols, got %v", err)
	}

	c, err := NewEncoder().Encode(allBytes(256))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	c.Format = FormatLegacy
	if _, err := c.MarshalBinary(); !errors.Is(err, ErrTooManySymbols) {
		t.Fatalf("expected ErrTooManySymbols from MarshalBinary, got %v", err)
	}
}

// With 255 equally frequent symbols one code has 7 bits and the rest 8, so
// the payload ends with a single pad bit that cannot complete a code.
func TestLegacy255Symbols(t *testing.T) {
	data := allBytes(255)
	packed, err := Compress(data, WithFormat(FormatLegacy))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if packed[0] != 255 {
		t.Fatalf("symbol count byte: got %d want 255", packed[0])
	}
	out, err := Decompress(packed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip mismatch: got %d bytes want %d", len(out), len(data))
	}
}

func TestLegacyTruncatedEntries(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{2, 'a'},
		{2, 'a', 1, 0x80, 'b'},
		{2, 'a', 1},
	} {
		if _, err := Decompress(data, WithFormat(FormatLegacy)); !errors.Is(err, ErrFormat) {
			t.Fatalf("%x: expected ErrFormat, got %v", data, err)
		}
	}
}
