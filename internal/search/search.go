package search

// rootPruneEpsilon bounds how close two g-values must be to count as tied during
// root-level redundancy pruning.
const rootPruneEpsilon = 1e-7

// Search runs the Anya best-first loop over an AnyaExpander: pop the
// lowest-f open node, expand it, and admit each successor into the open
// list only if it improves (or ties, via a sibling/parent exception on)
// the best known cost to its root point. Counters mirror the reference
// implementation's instrumentation, consumed by the scenario CSV output.
type Search struct {
	expander *AnyaExpander
	arena    *Arena
	heap     *FibonacciHeap
	h        Heuristic

	roots      map[int]NodeID
	searchID   int
	goal       NodeID
	pathFound  bool
	Expanded   int
	Insertions int
	Generated  int
	HeapOps    int
}

// NewSearch builds a Search driven by expander, allocating nodes from the
// same arena the expander uses.
func NewSearch(expander *AnyaExpander, arena *Arena) *Search {
	return &Search{
		expander: expander,
		arena:    arena,
		heap:     NewFibonacciHeap(arena),
		roots:    make(map[int]NodeID),
		goal:     NilNode,
	}
}

// PathFound reports whether the most recent Search/SearchCostOnly call
// found a route from start to target.
func (s *Search) PathFound() bool { return s.pathFound }

func (s *Search) init() {
	s.searchID++
	s.Expanded, s.Insertions, s.Generated, s.HeapOps = 0, 0, 0, 0
	s.heap.Clear()
	for k := range s.roots {
		delete(s.roots, k)
	}
	s.pathFound = false
	s.goal = NilNode
}

func (s *Search) resetNode(id NodeID) {
	n := s.arena.Get(id)
	n.ParentID = NilNode
	n.SearchID = s.searchID
	n.Closed = false
}

// SearchCostOnly runs the search from start to target and returns the
// optimal cost, or -1 if target is unreachable (or either endpoint's cell
// is blocked).
func (s *Search) SearchCostOnly(start, target NodeID) float64 {
	s.init()
	cost := -1.0

	if !s.expander.ValidateInstance(start, target) {
		return cost
	}

	s.Generated++
	s.resetNode(start)
	targetRoot := s.arena.Get(target).Root
	hVal := s.h.Value(s.arena.Get(start), s.arena.Get(target))
	s.heap.Insert(start, hVal, 0)

	for !s.heap.IsEmpty() {
		current := s.heap.RemoveMin()
		s.expander.Expand(current)
		s.Expanded++
		s.HeapOps++

		if s.arena.Get(current).Interval.Contains(targetRoot) {
			cost = s.arena.Get(current).key
			s.pathFound = true
			s.goal = current
			break
		}

		pHash := s.expander.Hash(current)
		currentG := s.arena.Get(current).G

		for {
			succ, ok := s.expander.Next()
			if !ok {
				break
			}
			s.Generated++

			rootHash := s.expander.Hash(succ)
			newG := currentG + s.expander.StepCost(succ)

			insert := true
			if rootRep, ok := s.roots[rootHash]; ok {
				rep := s.arena.Get(rootRep)
				rootBestG := rep.G
				insert = (newG - rootBestG) <= rootPruneEpsilon
				eq := (newG - rootBestG) >= -rootPruneEpsilon
				if insert && eq && rep.ParentID != NilNode {
					repParentHash := s.expander.Hash(rep.ParentID)
					insert = rootHash == pHash || repParentHash == pHash
				}
			}

			if insert {
				s.resetNode(succ)
				n := s.arena.Get(succ)
				n.ParentID = current
				n.G = newG
				s.heap.Insert(succ, newG+s.h.Value(n, s.arena.Get(target)), newG)
				s.roots[rootHash] = succ

				s.HeapOps++
				s.Insertions++
			}
		}
	}

	return cost
}

// Search runs SearchCostOnly and, if a path was found, reconstructs it by
// walking the goal node's parent chain back to start. The returned list
// ends at the target point, whose Cost is the total path cost; nodes that
// share a root point with the next waypoint contribute no extra waypoint.
func (s *Search) Search(start, target NodeID) *Path {
	cost := s.SearchCostOnly(start, target)
	if cost < 0 {
		return nil
	}

	head := &Path{Point: s.arena.Get(target).Root, Cost: cost}
	for id := s.goal; id != NilNode; {
		n := s.arena.Get(id)
		if n.Root != head.Point {
			head = &Path{Point: n.Root, Cost: n.G, Next: head}
		}
		id = n.ParentID
	}
	return head
}
