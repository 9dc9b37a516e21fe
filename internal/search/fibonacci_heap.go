package search

import "math"

// FibonacciHeap is a Fibonacci-heap priority queue over SearchNodes stored
// in an Arena, keyed on NodeID rather than pointers: the intrusive
// parent/child/left/right sibling links live directly on SearchNode, so
// the heap's structural operations are pure index bookkeeping, the same
// shape a container/heap-based min-heap uses for its Swap-time index
// updates, generalized to the tree-shaped Fibonacci structure.
//
// Amortized running time is O(1) for Insert/DecreaseKey and O(log n) for
// RemoveMin (which performs the consolidation pass). The priority order is
// fixed-point: both the primary and secondary key are scaled by 1e5 and
// rounded before comparison, so geometrically negligible float differences
// never affect tie-breaking; on equal (rounded) primary keys, the node
// with the larger secondary key sorts first.
type FibonacciHeap struct {
	arena *Arena
	min   NodeID
	n     int
}

// NewFibonacciHeap builds an empty heap backed by arena.
func NewFibonacciHeap(arena *Arena) *FibonacciHeap {
	return &FibonacciHeap{arena: arena, min: NilNode}
}

// IsEmpty reports whether the heap holds no nodes.
func (h *FibonacciHeap) IsEmpty() bool { return h.min == NilNode }

// Clear removes every node from the heap without touching the arena.
func (h *FibonacciHeap) Clear() {
	h.min = NilNode
	h.n = 0
}

// Len returns the number of nodes currently in the heap.
func (h *FibonacciHeap) Len() int { return h.n }

func fixedPoint(v float64) int64 {
	return int64(math.Round(v * 1e5))
}

// less reports whether node x has strictly higher priority (pops first)
// than node y.
func (h *FibonacciHeap) less(x, y NodeID) bool {
	nx, ny := &h.arena.nodes[x], &h.arena.nodes[y]
	kx, ky := fixedPoint(nx.key), fixedPoint(ny.key)
	if kx != ky {
		return kx < ky
	}
	return fixedPoint(nx.secondaryKey) > fixedPoint(ny.secondaryKey)
}

// Insert adds id to the heap with the given primary/secondary key. No
// consolidation is performed; id is simply spliced into the root list.
func (h *FibonacciHeap) Insert(id NodeID, key, secondaryKey float64) {
	n := &h.arena.nodes[id]
	n.key = key
	n.secondaryKey = secondaryKey
	n.heapParent = NilNode
	n.heapChild = NilNode
	n.degree = 0
	n.mark = false
	n.heapLeft = id
	n.heapRight = id

	if h.min != NilNode {
		h.spliceIntoRootList(id)
		if h.less(id, h.min) {
			h.min = id
		}
	} else {
		h.min = id
	}
	h.n++
}

// spliceIntoRootList inserts id next to the current minimum in the
// circular root list.
func (h *FibonacciHeap) spliceIntoRootList(id NodeID) {
	m := &h.arena.nodes[h.min]
	n := &h.arena.nodes[id]

	n.heapLeft = h.min
	oldRight := m.heapRight
	n.heapRight = oldRight
	m.heapRight = id
	h.arena.nodes[oldRight].heapLeft = id
}

// DecreaseKey lowers id's primary key; the secondary key is left as it is.
// The new primary key must not exceed the old one.
func (h *FibonacciHeap) DecreaseKey(id NodeID, key float64) {
	x := &h.arena.nodes[id]
	if fixedPoint(key) > fixedPoint(x.key) {
		panic("search: DecreaseKey got a larger key value")
	}
	x.key = key

	y := x.heapParent
	if y != NilNode && h.less(id, y) {
		h.cut(id, y)
		h.cascadingCut(y)
	}
	if h.less(id, h.min) {
		h.min = id
	}
}

// RemoveMin extracts and returns the minimum node, consolidating the heap
// if any root remains.
func (h *FibonacciHeap) RemoveMin() NodeID {
	z := h.min
	if z == NilNode {
		return NilNode
	}

	numKids := int(h.arena.nodes[z].degree)
	x := h.arena.nodes[z].heapChild
	for numKids > 0 {
		tempRight := h.arena.nodes[x].heapRight

		// detach x from z's child list
		h.arena.nodes[h.arena.nodes[x].heapLeft].heapRight = h.arena.nodes[x].heapRight
		h.arena.nodes[h.arena.nodes[x].heapRight].heapLeft = h.arena.nodes[x].heapLeft

		// splice x into the root list
		h.arena.nodes[x].heapLeft = h.min
		oldRight := h.arena.nodes[h.min].heapRight
		h.arena.nodes[x].heapRight = oldRight
		h.arena.nodes[h.min].heapRight = x
		h.arena.nodes[oldRight].heapLeft = x

		h.arena.nodes[x].heapParent = NilNode

		x = tempRight
		numKids--
	}

	// remove z from the root list
	zLeft, zRight := h.arena.nodes[z].heapLeft, h.arena.nodes[z].heapRight
	h.arena.nodes[zLeft].heapRight = zRight
	h.arena.nodes[zRight].heapLeft = zLeft

	if z == zRight {
		h.min = NilNode
	} else {
		h.min = zRight
		h.consolidate()
	}
	h.n--
	return z
}

func (h *FibonacciHeap) cascadingCut(y NodeID) {
	z := h.arena.nodes[y].heapParent
	if z == NilNode {
		return
	}
	if !h.arena.nodes[y].mark {
		h.arena.nodes[y].mark = true
		return
	}
	h.cut(y, z)
	h.cascadingCut(z)
}

const oneOverLogPhi = 1.0 / 0.4812118250596035 // 1/log(golden ratio)

func (h *FibonacciHeap) consolidate() {
	arraySize := int(math.Floor(math.Log(float64(h.n))*oneOverLogPhi)) + 1
	array := make([]NodeID, arraySize)
	for i := range array {
		array[i] = NilNode
	}

	numRoots := 0
	x := h.min
	if x != NilNode {
		numRoots++
		for y := h.arena.nodes[x].heapRight; y != h.min; y = h.arena.nodes[y].heapRight {
			numRoots++
		}
	}

	for numRoots > 0 {
		d := int(h.arena.nodes[x].degree)
		next := h.arena.nodes[x].heapRight

		for d < len(array) && array[d] != NilNode {
			y := array[d]
			if h.less(y, x) {
				x, y = y, x
			}
			h.link(y, x)
			array[d] = NilNode
			d++
		}
		if d >= len(array) {
			array = append(array, make([]NodeID, d-len(array)+1)...)
			for i := len(array) - (d - len(array) + 1); i < len(array); i++ {
				array[i] = NilNode
			}
		}
		array[d] = x

		x = next
		numRoots--
	}

	h.min = NilNode
	for _, y := range array {
		if y == NilNode {
			continue
		}
		if h.min != NilNode {
			// remove y from wherever it currently sits, then reinsert it
			// into the reconstructed root list.
			yl, yr := h.arena.nodes[y].heapLeft, h.arena.nodes[y].heapRight
			h.arena.nodes[yl].heapRight = yr
			h.arena.nodes[yr].heapLeft = yl

			h.arena.nodes[y].heapLeft = h.min
			oldRight := h.arena.nodes[h.min].heapRight
			h.arena.nodes[y].heapRight = oldRight
			h.arena.nodes[h.min].heapRight = y
			h.arena.nodes[oldRight].heapLeft = y

			if h.less(y, h.min) {
				h.min = y
			}
		} else {
			h.min = y
			h.arena.nodes[y].heapLeft = y
			h.arena.nodes[y].heapRight = y
		}
	}
}

// cut removes x from y's child list and adds it to the root list.
func (h *FibonacciHeap) cut(x, y NodeID) {
	xn := &h.arena.nodes[x]
	h.arena.nodes[xn.heapLeft].heapRight = xn.heapRight
	h.arena.nodes[xn.heapRight].heapLeft = xn.heapLeft
	h.arena.nodes[y].degree--

	if h.arena.nodes[y].heapChild == x {
		h.arena.nodes[y].heapChild = xn.heapRight
	}
	if h.arena.nodes[y].degree == 0 {
		h.arena.nodes[y].heapChild = NilNode
	}

	xn.heapLeft = h.min
	oldRight := h.arena.nodes[h.min].heapRight
	xn.heapRight = oldRight
	h.arena.nodes[h.min].heapRight = x
	h.arena.nodes[oldRight].heapLeft = x

	xn.heapParent = NilNode
	xn.mark = false
}

// link makes y a child of x.
func (h *FibonacciHeap) link(y, x NodeID) {
	yn := &h.arena.nodes[y]
	h.arena.nodes[yn.heapLeft].heapRight = yn.heapRight
	h.arena.nodes[yn.heapRight].heapLeft = yn.heapLeft

	yn.heapParent = x
	xn := &h.arena.nodes[x]
	if xn.heapChild == NilNode {
		xn.heapChild = y
		yn.heapRight = y
		yn.heapLeft = y
	} else {
		yn.heapLeft = xn.heapChild
		yn.heapRight = h.arena.nodes[xn.heapChild].heapRight
		h.arena.nodes[xn.heapChild].heapRight = y
		h.arena.nodes[yn.heapRight].heapLeft = y
	}
	xn.degree++
	yn.mark = false
}
