package huff

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// tableCache maps the raw entry bytes of a container header to the tree
// rebuilt from them. Cached trees are never modified after construction.
// A nil *tableCache is a valid, always-missing cache.
type tableCache struct {
	trees *lru.Cache[uint64, cachedTree]
}

type cachedTree struct {
	entries []byte // copy of the key bytes, compared on hit to rule out hash collisions
	tree    *Tree
}

func newTableCache(size int) *tableCache {
	if size <= 0 {
		return nil
	}
	trees, err := lru.New[uint64, cachedTree](size)
	if err != nil {
		return nil
	}
	return &tableCache{trees: trees}
}

func (c *tableCache) get(entries []byte) (*Tree, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.trees.Get(xxhash.Sum64(entries))
	if !ok || !bytes.Equal(v.entries, entries) {
		return nil, false
	}
	return v.tree, true
}

func (c *tableCache) add(entries []byte, t *Tree) {
	if c == nil {
		return
	}
	c.trees.Add(xxhash.Sum64(entries), cachedTree{
		entries: bytes.Clone(entries),
		tree:    t,
	})
}

func (c *tableCache) len() int {
	if c == nil {
		return 0
	}
	return c.trees.Len()
}
