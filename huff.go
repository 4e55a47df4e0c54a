package huff

import (
	"bytes"
	"io"
)

// Config holds configuration for encoders and decoders.
type Config struct {
	Format        Format // Container layout (FormatAuto = framed on encode, detect on decode)
	TableCache    int    // Number of rebuilt trees a Decoder keeps (0 = no cache)
	MaxDecodedLen uint64 // Largest decoded length a framed container may declare (0 = default 1 GiB)
}

// Option is a functional option for configuring an Encoder or Decoder.
type Option func(*Config)

// WithFormat selects the container layout.
func WithFormat(f Format) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithTableCache makes a Decoder keep up to size rebuilt trees keyed by the
// table bytes, so containers sharing a code table skip the rebuild.
// Values <= 0 disable the cache.
func WithTableCache(size int) Option {
	return func(c *Config) {
		c.TableCache = size
	}
}

// WithMaxDecodedLen bounds the decoded length a framed container may declare.
func WithMaxDecodedLen(n uint64) Option {
	return func(c *Config) {
		c.MaxDecodedLen = n
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func resolveEncodeFormat(cfg Config) Format {
	switch cfg.Format {
	case FormatLegacy:
		return FormatLegacy
	default:
		return FormatFramed
	}
}

func resolveMaxDecodedLen(cfg Config) uint64 {
	if cfg.MaxDecodedLen == 0 {
		return defaultMaxDecodedLen
	}
	return cfg.MaxDecodedLen
}

// Compress encodes data into a serialized container.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	c, err := NewEncoder(opts...).Encode(data)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// Decompress decodes a serialized container.
func Decompress(src []byte, opts ...Option) ([]byte, error) {
	return NewDecoder(opts...).Decode(src)
}

// CompressTo encodes the whole of r and writes the container to w.
func CompressTo(w io.Writer, r io.Reader, opts ...Option) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	return NewEncoder(opts...).EncodeTo(w, data)
}

// DecompressTo decodes the container read from r and writes the bytes to w.
func DecompressTo(w io.Writer, r io.Reader, opts ...Option) (int64, error) {
	out, err := NewDecoder(opts...).DecodeFrom(r)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(out))
}
