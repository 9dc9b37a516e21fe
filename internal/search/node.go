// Package search implements the Anya best-first search core: interval
// projection, successor expansion, the Fibonacci-heap priority queue, and
// the search loop itself.
package search

import "github.com/anyaeng/anya/internal/grid"

// NodeID indexes a SearchNode within an Arena. NilNode (-1) is the
// "no node" sentinel; the zero value 0 is the arena's first node.
type NodeID int32

// NilNode is the sentinel NodeID meaning "no node" (nil parent, empty heap).
const NilNode NodeID = -1

// SearchNode is the (root-point, interval, parent, g) tuple used as the
// search's state and, simultaneously, as the Fibonacci heap's node: the
// intrusive sibling/child/parent links and key fields below let a single
// arena slot serve both roles, avoiding a second pointer-linked structure.
type SearchNode struct {
	Root     grid.Point
	Interval grid.Interval
	ParentID NodeID
	G        float64
	SearchID int
	Closed   bool

	key          float64
	secondaryKey float64

	heapParent, heapChild, heapLeft, heapRight NodeID
	degree                                     int32
	mark                                       bool
}

// Arena is a slice-backed pool of SearchNode values indexed by NodeID. A
// search's memory is freed by resetting the arena to length zero rather
// than walking and releasing a pointer-linked tree.
type Arena struct {
	nodes []SearchNode
}

// New appends a fresh node to the arena and returns its id.
func (a *Arena) New(root grid.Point, interval grid.Interval, parent NodeID) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, SearchNode{
		Root:     root,
		Interval: interval,
		ParentID: parent,
	})
	return id
}

// Get returns a pointer to the node at id. The pointer is only valid until
// the next call to New, which may reallocate the backing slice.
func (a *Arena) Get(id NodeID) *SearchNode {
	return &a.nodes[id]
}

// Reset discards all nodes, keeping the underlying storage for reuse.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
}

// Len returns the number of live nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}
