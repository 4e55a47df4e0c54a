package huff

import (
	"container/heap"
	"fmt"
)

const noChild = int32(-1)

// node is one arena slot of a Tree. A leaf carries a symbol and no children;
// an internal node carries child indices, either of which may be noChild while
// a tree is being rebuilt from a code table.
type node struct {
	weight uint64
	left   int32
	right  int32
	symbol byte
	leaf   bool
}

// Tree is a binary prefix tree stored as an arena of nodes addressed by index.
// Leaves are symbols; the path from the root to a leaf (left=0, right=1) is
// the symbol's code.
type Tree struct {
	nodes  []node
	root   int32
	leaves int
}

// queueItem is a pending subtree in the builder's priority queue.
// seq is the insertion sequence number used to break weight ties.
type queueItem struct {
	index  int32
	weight uint64
	seq    uint32
}

// nodeQueue is a min-heap ordered by (weight, seq).
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// BuildTree builds a Huffman tree from the symbols of h with a nonzero count.
//
// The two lightest subtrees are combined repeatedly; the first one extracted
// becomes the left child. Ties on weight are broken by insertion order: leaves
// are inserted in ascending symbol order, then every combined node is inserted
// after all nodes that exist at that point. The result is therefore fully
// determined by h.
//
// An empty histogram yields an empty tree. A histogram with a single symbol
// yields a tree whose root is that leaf, giving it a zero-length code.
func BuildTree(h Histogram) *Tree {
	t := &Tree{root: noChild}
	distinct := h.Distinct()
	if distinct == 0 {
		return t
	}

	t.nodes = make([]node, 0, 2*distinct-1)
	q := make(nodeQueue, 0, distinct)
	var seq uint32
	for i, count := range h {
		if count == 0 {
			continue
		}
		idx := t.addLeaf(byte(i), count)
		q = append(q, queueItem{index: idx, weight: count, seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		first := heap.Pop(&q).(queueItem)
		second := heap.Pop(&q).(queueItem)
		weight := first.weight + second.weight
		idx := t.addInternal(first.index, second.index, weight)
		heap.Push(&q, queueItem{index: idx, weight: weight, seq: seq})
		seq++
	}
	t.root = q[0].index
	return t
}

// newDecodeTree returns a tree holding only an empty internal root, ready for
// insert.
func newDecodeTree(capacity int) *Tree {
	t := &Tree{nodes: make([]node, 0, capacity)}
	t.root = t.addInternal(noChild, noChild, 0)
	return t
}

func (t *Tree) addLeaf(sym byte, weight uint64) int32 {
	t.nodes = append(t.nodes, node{weight: weight, left: noChild, right: noChild, symbol: sym, leaf: true})
	t.leaves++
	return int32(len(t.nodes) - 1)
}

func (t *Tree) addInternal(left, right int32, weight uint64) int32 {
	t.nodes = append(t.nodes, node{weight: weight, left: left, right: right})
	return int32(len(t.nodes) - 1)
}

// insert places sym at the end of the path spelled by code, creating internal
// nodes on the way. It rejects codes that would break the prefix property.
func (t *Tree) insert(sym byte, code Code) error {
	cur := t.root
	for i, bit := range code {
		if t.nodes[cur].leaf {
			return fmt.Errorf("%w: code %q for symbol %#02x passes through leaf %#02x at bit %d",
				ErrFormat, code.String(), sym, t.nodes[cur].symbol, i)
		}
		next := t.child(cur, bit)
		if next == noChild {
			next = t.addInternal(noChild, noChild, 0)
			if bit {
				t.nodes[cur].right = next
			} else {
				t.nodes[cur].left = next
			}
		}
		cur = next
	}

	n := &t.nodes[cur]
	if n.leaf {
		return fmt.Errorf("%w: code %q for symbol %#02x is already assigned to %#02x",
			ErrFormat, code.String(), sym, n.symbol)
	}
	if n.left != noChild || n.right != noChild {
		return fmt.Errorf("%w: code %q for symbol %#02x is a prefix of another code",
			ErrFormat, code.String(), sym)
	}
	n.leaf = true
	n.symbol = sym
	t.leaves++
	return nil
}

// child follows one edge from n. It returns noChild when the edge is absent.
func (t *Tree) child(n int32, bit bool) int32 {
	if bit {
		return t.nodes[n].right
	}
	return t.nodes[n].left
}

func (t *Tree) isLeaf(n int32) bool { return t.nodes[n].leaf }

func (t *Tree) symbolAt(n int32) byte { return t.nodes[n].symbol }

// Len returns the number of leaves.
func (t *Tree) Len() int { return t.leaves }

// Empty reports whether the tree has no leaves.
func (t *Tree) Empty() bool { return t.leaves == 0 }

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if t.root == noChild {
		return 0
	}
	depth := 0
	t.visit(func(n int32, d int) {
		if t.nodes[n].leaf && d > depth {
			depth = d
		}
	})
	return depth
}

// WeightedPathLength returns the sum over leaves of weight times depth, which
// is the payload size in bits for the buffer the tree was built from.
func (t *Tree) WeightedPathLength() uint64 {
	var total uint64
	if t.root == noChild {
		return 0
	}
	t.visit(func(n int32, d int) {
		if t.nodes[n].leaf {
			total += t.nodes[n].weight * uint64(d)
		}
	})
	return total
}

// visit calls fn for every node reachable from the root with its depth.
func (t *Tree) visit(fn func(n int32, depth int)) {
	type frame struct {
		n     int32
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.n, f.depth)
		if r := t.nodes[f.n].right; r != noChild {
			stack = append(stack, frame{r, f.depth + 1})
		}
		if l := t.nodes[f.n].left; l != noChild {
			stack = append(stack, frame{l, f.depth + 1})
		}
	}
}
