package huff

import (
	"fmt"
	"strings"
)

// Code is the bit path of one symbol, root first. false is a left edge (0),
// true a right edge (1).
type Code []bool

// maxCodeLen is the longest code the one-byte length field can describe.
const maxCodeLen = 255

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, bit := range c {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

// ParseCode parses a string of '0' and '1' into a Code.
func ParseCode(s string) (Code, error) {
	code := make(Code, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			code[i] = true
		default:
			return nil, fmt.Errorf("invalid code digit %q at position %d", s[i], i)
		}
	}
	return code, nil
}

// CodeTable maps every symbol of an input to its code.
type CodeTable struct {
	codes   [256]Code
	present [256]bool
	n       int
}

// Set assigns code to sym, replacing any previous code.
func (t *CodeTable) Set(sym byte, code Code) {
	if !t.present[sym] {
		t.present[sym] = true
		t.n++
	}
	t.codes[sym] = code
}

// Lookup returns the code of sym and whether sym is in the table.
func (t *CodeTable) Lookup(sym byte) (Code, bool) {
	return t.codes[sym], t.present[sym]
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int { return t.n }

// Symbols returns the symbols of the table in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, t.n)
	for i, ok := range t.present {
		if ok {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// PrefixFree reports whether no code in the table is a prefix of the code of
// another symbol.
func (t *CodeTable) PrefixFree() bool {
	syms := t.Symbols()
	for i, a := range syms {
		for _, b := range syms[i+1:] {
			if t.codes[a].HasPrefix(t.codes[b]) || t.codes[b].HasPrefix(t.codes[a]) {
				return false
			}
		}
	}
	return true
}

// EncodedBits returns the payload size in bits of a buffer with histogram h.
func (t *CodeTable) EncodedBits(h *Histogram) uint64 {
	var total uint64
	for i, count := range h {
		if count > 0 {
			total += count * uint64(len(t.codes[i]))
		}
	}
	return total
}

// Codes derives the code table of t by depth-first traversal, appending 0 on
// every left edge and 1 on every right edge.
func (t *Tree) Codes() *CodeTable {
	table := &CodeTable{}
	if t.root == noChild {
		return table
	}
	t.assign(t.root, Code{}, table)
	return table
}

// assign records path for a leaf or descends into both children. Each branch
// receives its own copy of the path.
func (t *Tree) assign(n int32, path Code, table *CodeTable) {
	nd := t.nodes[n]
	if nd.leaf {
		table.Set(nd.symbol, path)
		return
	}
	if nd.left != noChild {
		t.assign(nd.left, extend(path, false), table)
	}
	if nd.right != noChild {
		t.assign(nd.right, extend(path, true), table)
	}
}

func extend(path Code, bit bool) Code {
	next := make(Code, len(path)+1)
	copy(next, path)
	next[len(path)] = bit
	return next
}

// tree rebuilds a prefix tree directly from the codes of t, inserting symbols
// in ascending order.
func (t *CodeTable) tree() (*Tree, error) {
	if t.n > 1 {
		for _, sym := range t.Symbols() {
			if len(t.codes[sym]) == 0 {
				return nil, fmt.Errorf("%w: zero-length code for symbol %#02x in a table of %d symbols",
					ErrFormat, sym, t.n)
			}
		}
	}
	tree := newDecodeTree(2 * t.n)
	for _, sym := range t.Symbols() {
		code := t.codes[sym]
		if len(code) > maxCodeLen {
			return nil, fmt.Errorf("%w: code for symbol %#02x has %d bits, limit is %d",
				ErrFormat, sym, len(code), maxCodeLen)
		}
		if err := tree.insert(sym, code); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
