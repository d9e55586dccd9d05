package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// TreeNode is one node of a Tree.  A leaf has Left == Right == -1 and a valid
// Symbol.  An internal node has Symbol == InvalidSymbol and exactly two
// children, which are indices into the same Tree.
type TreeNode struct {
	Symbol Symbol
	Count  uint32
	Left   int32
	Right  int32
}

// IsLeaf returns true iff this node has no children.
func (node TreeNode) IsLeaf() bool {
	return node.Left < 0
}

// Tree is a Huffman merge tree stored as an arena of nodes.  The zero value
// is the empty tree.  Trees are immutable once built.
type Tree struct {
	nodes []TreeNode
	root  int32
}

// BuildTree constructs a Huffman tree from entries with nonzero counts.
//
// Nodes are merged two at a time, lowest count first.  The first node popped
// becomes the left child and the second becomes the right child.  Ties are
// broken deterministically: at equal counts leaves come before internal nodes,
// leaves are ordered by ascending Symbol, and internal nodes are ordered by
// the order in which they were created.
//
func BuildTree(entries []FrequencyEntry) Tree {
	numLeaves := len(entries)
	if numLeaves == 0 {
		return Tree{}
	}
	assert.Assertf(numLeaves <= math.MaxInt32/2, "too many symbols: %d", numLeaves)

	nodes := make([]TreeNode, 0, 2*numLeaves-1)
	h := freqHeap{list: make([]heapItem, 0, numLeaves)}
	for _, entry := range entries {
		assert.Assertf(entry.Symbol >= 0, "invalid symbol %d", entry.Symbol)
		assert.Assertf(entry.Count != 0, "symbol %d has a count of 0", entry.Symbol)
		index := int32(len(nodes))
		nodes = append(nodes, TreeNode{Symbol: entry.Symbol, Count: entry.Count, Left: -1, Right: -1})
		h.list = append(h.list, heapItem{index: index, count: entry.Count, key: uint32(entry.Symbol)})
	}
	h.Init()

	// Internal nodes get keys with the high bit set, so that they sort
	// after every natural symbol and among themselves in creation order.
	nextKey := uint32(1) << 31

	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		count := addSaturating32(a.count, b.count)
		index := int32(len(nodes))
		nodes = append(nodes, TreeNode{Symbol: InvalidSymbol, Count: count, Left: a.index, Right: b.index})
		heap.Push(&h, heapItem{index: index, count: count, key: nextKey})
		nextKey++
	}

	root := heap.Pop(&h).(heapItem)
	return Tree{nodes: nodes, root: root.index}
}

// Len returns the number of nodes in the tree.
func (t Tree) Len() int {
	return len(t.nodes)
}

// Root returns the index of the root node, or -1 for the empty tree.
func (t Tree) Root() int32 {
	if len(t.nodes) == 0 {
		return -1
	}
	return t.root
}

// Node returns the node at the given index.
func (t Tree) Node(index int32) TreeNode {
	return t.nodes[index]
}

// NumLeaves returns the number of leaves, which is also the number of
// distinct symbols the tree was built from.
func (t Tree) NumLeaves() int {
	if len(t.nodes) == 0 {
		return 0
	}
	return (len(t.nodes) + 1) / 2
}

// Walk visits every leaf in depth-first order, left before right, and passes
// the leaf's Symbol along with the path taken to reach it: a 0 bit for each
// left turn and a 1 bit for each right turn.  A tree consisting of a single
// leaf visits that leaf with an empty path.
//
func (t Tree) Walk(visit func(symbol Symbol, raw Code)) {
	if len(t.nodes) == 0 {
		return
	}

	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index int32
		path  Code
		x     byte
	}

	root := t.nodes[t.root]
	if root.IsLeaf() {
		visit(root.Symbol, Code{})
		return
	}

	stack := make([]stackItem, 1, 2*log2uint32(uint32(len(t.nodes))))
	stack[0] = stackItem{index: t.root}

	processChild := func(child int32, path Code) {
		node := t.nodes[child]
		if node.IsLeaf() {
			visit(node.Symbol, path)
			return
		}
		assert.Assertf(path.Size < MaxBitsPerCode, "tree is deeper than %d", MaxBitsPerCode)
		stack = append(stack, stackItem{index: child, path: path})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		node := t.nodes[top.index]
		switch x {
		case 0:
			processChild(node.Left, top.path.Append(false))
		case 1:
			processChild(node.Right, top.path.Append(true))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// RawCodes returns the tree-derived (non-canonical) code for each Symbol in
// [0, numSymbols).  Symbols absent from the tree get the empty Code.  A lone
// leaf is assigned the 1-bit code "0", since an empty code cannot be
// transmitted.
//
func (t Tree) RawCodes(numSymbols int) []Code {
	codes := make([]Code, numSymbols)
	t.Walk(func(symbol Symbol, raw Code) {
		assert.Assertf(int(symbol) < numSymbols, "symbol %d >= numSymbols %d", symbol, numSymbols)
		if raw.Size == 0 {
			raw = MakeCode(1, 0)
		}
		codes[symbol] = raw
	})
	return codes
}

// Sizes returns the code length for each Symbol in [0, numSymbols), with 0
// meaning the Symbol is absent.
func (t Tree) Sizes(numSymbols int) []byte {
	raw := t.RawCodes(numSymbols)
	out := make([]byte, numSymbols)
	for symbol, hc := range raw {
		out[symbol] = hc.Size
	}
	return out
}

// WeightedPathLength returns the sum of count × depth over all leaves.
func (t Tree) WeightedPathLength() uint64 {
	var sum uint64
	var walk func(index int32, depth uint64)
	walk = func(index int32, depth uint64) {
		node := t.nodes[index]
		if node.IsLeaf() {
			sum += uint64(node.Count) * depth
			return
		}
		walk(node.Left, depth+1)
		walk(node.Right, depth+1)
	}
	if len(t.nodes) != 0 {
		walk(t.root, 0)
	}
	return sum
}

// type heapItem + type freqHeap {{{

type heapItem struct {
	index int32
	count uint32
	key   uint32
}

type freqHeap struct {
	list []heapItem
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.count != b.count {
		return a.count < b.count
	}
	return a.key < b.key
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
