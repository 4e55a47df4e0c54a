package huff

import (
	"fmt"
	"io"
)

// Decoder parses containers and replays their payload through the rebuilt
// tree. A Decoder may be shared; its table cache is safe for concurrent use.
type Decoder struct {
	config Config
	cache  *tableCache
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	cfg := newConfig(opts)
	return &Decoder{
		config: cfg,
		cache:  newTableCache(cfg.TableCache),
	}
}

// Parse reads the header of src and rebuilds its tree without decoding the
// payload.
func (d *Decoder) Parse(src []byte) (*Container, error) {
	h, err := parseHeader(src, d.config.Format, resolveMaxDecodedLen(d.config))
	if err != nil {
		return nil, err
	}
	tree, err := d.tree(h)
	if err != nil {
		return nil, fmt.Errorf("rebuild tree from %d entries at offset %d: %w", h.count, h.entriesOffset, err)
	}
	return h.container(src, tree), nil
}

// Decode decompresses a serialized container.
func (d *Decoder) Decode(src []byte) ([]byte, error) {
	c, err := d.Parse(src)
	if err != nil {
		return nil, err
	}
	return c.AppendAll(nil)
}

// DecodeFrom reads a serialized container from r to EOF and decompresses it.
func (d *Decoder) DecodeFrom(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxContainerBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	if len(data) > maxContainerBytes {
		return nil, fmt.Errorf("%w: container larger than %d bytes", ErrFormat, maxContainerBytes)
	}
	return d.Decode(data)
}

// CachedTables returns the number of trees held by the table cache.
func (d *Decoder) CachedTables() int {
	return d.cache.len()
}

func (d *Decoder) tree(h header) (*Tree, error) {
	if t, ok := d.cache.get(h.entries); ok {
		return t, nil
	}
	t, err := h.table.tree()
	if err != nil {
		return nil, err
	}
	d.cache.add(h.entries, t)
	return t, nil
}
