package search

import "github.com/anyaeng/anya/internal/grid"

// AnyaExpander generates the successors of a SearchNode by projecting its
// interval onto an adjacent row and splitting the projection at every
// internal corner. It holds the cursor over the current node's successor
// list (Expand/Next/HasNext/StepCost) the way a conventional grid
// expansion policy exposes neighbours one at a time.
type AnyaExpander struct {
	grid  *grid.BitpackedGrid
	arena *Arena
	prune bool

	startID, targetID NodeID
	tx, ty            float64

	cnode      NodeID
	successors []NodeID
	idxSucc    int
}

// NewAnyaExpander builds an expander over g, allocating successor nodes
// from arena. Pruning of intermediate/dead-end/sterile successors is
// enabled when prune is true; with prune false every taut successor is
// generated without the heuristic short-circuits.
func NewAnyaExpander(g *grid.BitpackedGrid, arena *Arena, prune bool) *AnyaExpander {
	return &AnyaExpander{grid: g, arena: arena, prune: prune, startID: NilNode, targetID: NilNode}
}

// ValidateInstance records the start/target nodes for an upcoming search
// and reports whether both their root cells are traversable.
func (e *AnyaExpander) ValidateInstance(start, target NodeID) bool {
	e.startID = start
	e.targetID = target
	t := e.arena.Get(target)
	e.tx, e.ty = t.Root.X, t.Root.Y

	s := e.arena.Get(start)
	return e.grid.CellTraversable(int(s.Root.X), int(s.Root.Y)) &&
		e.grid.CellTraversable(int(t.Root.X), int(t.Root.Y))
}

// Expand computes and caches the successors of vertex, resetting the
// Next/HasNext cursor to the start of that list.
func (e *AnyaExpander) Expand(vertex NodeID) {
	e.cnode = vertex
	e.idxSucc = 0
	e.successors = e.successors[:0]

	if vertex == e.startID {
		e.generateStartSuccessors(vertex, &e.successors)
	} else {
		e.generateSuccessors(vertex, &e.successors)
	}
}

// Next returns the next successor of the node under expansion, or
// (NilNode, false) once the list is exhausted.
func (e *AnyaExpander) Next() (NodeID, bool) {
	if e.idxSucc >= len(e.successors) {
		return NilNode, false
	}
	id := e.successors[e.idxSucc]
	e.idxSucc++
	return id, true
}

// HasNext reports whether Next has any successor left to return.
func (e *AnyaExpander) HasNext() bool { return e.idxSucc < len(e.successors) }

// StepCost returns the Euclidean distance between the root of the node
// under expansion and the root of succ.
func (e *AnyaExpander) StepCost(succ NodeID) float64 {
	return e.arena.Get(e.cnode).Root.Distance(e.arena.Get(succ).Root)
}

// newSuccessor allocates a successor node rooted at (rootx,rooty) with the
// given interval, computing its g-value from parent's g plus the
// Euclidean step from parent's root.
func (e *AnyaExpander) newSuccessor(left, right float64, row int, rootx, rooty int, parent NodeID) NodeID {
	root := grid.Point{X: float64(rootx), Y: float64(rooty)}

	var g float64
	if parent != NilNode {
		p := e.arena.Get(parent)
		g = p.G + p.Root.Distance(root)
	}

	iv := *grid.NewInterval(left, right, row)
	id := e.arena.New(root, iv, parent)
	e.arena.Get(id).G = g
	return id
}

func (e *AnyaExpander) generateSuccessors(nodeID NodeID, retval *[]NodeID) {
	node := e.arena.Get(nodeID)
	root, iv := node.Root, node.Interval

	if root.Y == float64(iv.Row) {
		var proj IntervalProjection
		proj.Project(iv.Left(), iv.Right(), iv.Row, int(root.X), int(root.Y), e.grid)
		e.flatNodeObs(nodeID, retval, &proj)

		var f2c IntervalProjection
		f2c.ProjectF2C(iv.Left(), iv.Right(), iv.Row, int(root.X), int(root.Y), e.grid)
		e.flatNodeNobs(nodeID, retval, &f2c)
	} else {
		var proj IntervalProjection
		proj.Project(iv.Left(), iv.Right(), iv.Row, int(root.X), int(root.Y), e.grid)
		e.coneNodeObs(nodeID, retval, &proj)
		e.coneNodeNobs(nodeID, retval, &proj)
	}
}

// generateStartSuccessors generates the initial successors of the
// off-grid start node, whose interval degenerates to its own root point.
func (e *AnyaExpander) generateStartSuccessors(nodeID NodeID, retval *[]NodeID) {
	node := e.arena.Get(nodeID)
	root := node.Root
	rootx, rooty := int(root.X), int(root.Y)

	startDC := e.grid.PointDoubleCorner(rootx, rooty)

	// a double-corner start that is itself blocked is an ambiguous pinch
	// point: there is no well-defined direction to leave it from.
	if startDC && !e.grid.CellTraversable(rootx, rooty) {
		return
	}

	// flat observable successors, using a root one cell off to either side
	// so the flat projector picks the correct scan direction.
	var proj IntervalProjection
	if !startDC {
		proj.Project(float64(rootx), float64(rootx), rooty, rootx+1, rooty, e.grid)
		e.generateObservableFlat(&proj, rootx, rooty, nodeID, retval)
	}

	proj.Project(float64(rootx), float64(rootx), rooty, rootx-1, rooty, e.grid)
	e.generateObservableFlat(&proj, rootx, rooty, nodeID, retval)

	// conical observable successors below the start point.
	maxLeft := float64(e.grid.ScanCellsLeft(rootx, rooty) + 1)
	maxRight := float64(e.grid.ScanCellsRight(rootx, rooty))
	if maxLeft != float64(rootx) && !startDC {
		e.splitIntervalMakeSuccessors(maxLeft, float64(rootx), rooty+1, rootx, rooty, rooty+1, nodeID, retval)
	}
	if maxRight != float64(rootx) {
		e.splitIntervalMakeSuccessors(float64(rootx), maxRight, rooty+1, rootx, rooty, rooty+1, nodeID, retval)
	}

	// conical observable successors above the start point.
	maxLeft = float64(e.grid.ScanCellsLeft(rootx-1, rooty-1) + 1)
	maxRight = float64(e.grid.ScanCellsRight(rootx, rooty-1))
	if maxLeft != float64(rootx) && !startDC {
		e.splitIntervalMakeSuccessors(maxLeft, float64(rootx), rooty-1, rootx, rooty, rooty-2, nodeID, retval)
	}
	if maxRight != float64(rootx) {
		e.splitIntervalMakeSuccessors(float64(rootx), maxRight, rooty-1, rootx, rooty, rooty-2, nodeID, retval)
	}
}

// splitIntervalMakeSuccessors splits [maxLeft,maxRight) on row irow at
// every internal corner (scanning leftward from maxRight), producing one
// successor per taut segment. A segment is skipped when pruning is
// enabled, it doesn't contain the target, and it is sterile (neither
// endpoint is adjacent to a traversable cell on sterileCheckRow).
func (e *AnyaExpander) splitIntervalMakeSuccessors(maxLeft, maxRight float64, irow int, rootx, rooty int, sterileCheckRow int, parent NodeID, retval *[]NodeID) {
	if maxLeft == maxRight {
		return
	}

	succLeft := maxRight
	numSuccessors := len(*retval)
	forcedSucc := !e.prune || e.containsTarget(maxLeft, maxRight, irow)

	var lastID NodeID = NilNode
	for {
		succRight := succLeft
		succLeft = float64(e.grid.ScanLeft(succRight, irow))

		if forcedSucc || !e.sterile(succLeft, succRight, sterileCheckRow) {
			left := succLeft
			if succLeft < maxLeft {
				left = maxLeft
			}
			lastID = e.newSuccessor(left, succRight, irow, rootx, rooty, parent)
			*retval = append(*retval, lastID)
		}

		if !(succLeft != succRight && succLeft > maxLeft) {
			break
		}
	}

	if !forcedSucc && len(*retval) == numSuccessors+1 && lastID != NilNode {
		iv := e.arena.Get(lastID).Interval
		if e.intermediate(&iv, rootx, rooty) {
			*retval = (*retval)[:len(*retval)-1]

			var proj IntervalProjection
			proj.ProjectCone(iv.Left(), iv.Right(), iv.Row, rootx, rooty, e.grid)
			if proj.Valid && proj.Observable {
				e.splitIntervalMakeSuccessors(proj.Left, proj.Right, proj.Row, rootx, rooty, proj.SterileCheckRow, parent, retval)
			}
		}
	}
}

// sterile reports whether neither point just inside [left,right) is
// adjacent to a traversable cell on row — i.e. the segment touches no
// open space and so can generate no useful successors.
func (e *AnyaExpander) sterile(left, right float64, row int) bool {
	r := int(right - grid.Epsilon)
	l := int(left + grid.Epsilon)
	return !e.grid.CellTraversable(l, row) && !e.grid.CellTraversable(r, row)
}

// intermediate reports whether iv's endpoints are not adjacent to any
// location occluded from (rootx,rooty) — i.e. the interval hugs no wall
// and so is not a taut turning point worth keeping as its own successor.
func (e *AnyaExpander) intermediate(iv *grid.Interval, rootx, rooty int) bool {
	left, right, row := iv.Left(), iv.Right(), iv.Row
	tmpLeft, tmpRight := int(left), int(right)

	rightOfRoot := tmpRight < rootx
	leftOfRoot := rootx < tmpLeft

	var leftTurn, rightTurn bool
	if rooty < row {
		leftTurn = iv.DiscreteLeft && e.grid.PointCorner(tmpLeft, row) &&
			(!e.grid.CellTraversable(tmpLeft-1, row-1) || leftOfRoot)
		rightTurn = iv.DiscreteRight && e.grid.PointCorner(tmpRight, row) &&
			(!e.grid.CellTraversable(tmpRight, row-1) || rightOfRoot)
	} else {
		leftTurn = iv.DiscreteLeft && e.grid.PointCorner(tmpLeft, row) &&
			(!e.grid.CellTraversable(tmpLeft-1, row) || leftOfRoot)
		rightTurn = iv.DiscreteRight && e.grid.PointCorner(tmpRight, row) &&
			(!e.grid.CellTraversable(tmpRight, row) || rightOfRoot)
	}

	return !((iv.DiscreteLeft && leftTurn) || (iv.DiscreteRight && rightTurn))
}

// containsTarget reports whether the interval [left,right] on row
// contains the validated target's root point, widened by Epsilon.
func (e *AnyaExpander) containsTarget(left, right float64, row int) bool {
	return float64(row) == e.ty && e.tx >= left-grid.Epsilon && e.tx <= right+grid.Epsilon
}

func (e *AnyaExpander) coneNodeObs(nodeID NodeID, retval *[]NodeID, proj *IntervalProjection) {
	root := e.arena.Get(nodeID).Root
	e.generateObservableCone(proj, int(root.X), int(root.Y), nodeID, retval)
}

func (e *AnyaExpander) generateObservableCone(proj *IntervalProjection, rootx, rooty int, parent NodeID, retval *[]NodeID) {
	if !(proj.Valid && proj.Observable) {
		return
	}
	e.splitIntervalMakeSuccessors(proj.Left, proj.Right, proj.Row, rootx, rooty, proj.SterileCheckRow, parent, retval)
}

// coneNodeNobs generates the non-observable successors of a cone node:
// type (iii) successors when the projection itself isn't observable (the
// viewing angle is too shallow to see anything on the next row), and
// types (i)/(ii) — flat successors that bend around a corner of the
// current interval plus conical successors from the projected row beyond
// it — when it is.
func (e *AnyaExpander) coneNodeNobs(nodeID NodeID, retval *[]NodeID, proj *IntervalProjection) {
	if !proj.Valid {
		return
	}

	node := e.arena.Get(nodeID)
	iv, root := node.Interval, node.Root
	ileft, iright, irow := iv.Left(), iv.Right(), iv.Row

	if !proj.Observable {
		if root.X > iright && iv.DiscreteRight && e.grid.PointCorner(int(iright), irow) {
			e.splitIntervalMakeSuccessors(proj.MaxLeft, iright, proj.Row, int(iright), irow, proj.SterileCheckRow, nodeID, retval)
		} else if root.X < ileft && iv.DiscreteLeft && e.grid.PointCorner(int(ileft), irow) {
			e.splitIntervalMakeSuccessors(ileft, proj.MaxRight, proj.Row, int(ileft), irow, proj.SterileCheckRow, nodeID, retval)
		}

		if iv.DiscreteLeft &&
			!e.grid.CellTraversable(int(ileft)-1, proj.TypeIIICheckRow) &&
			e.grid.CellTraversable(int(ileft)-1, proj.CheckVisRow) {
			var flat IntervalProjection
			flat.ProjectFlat(ileft-e.grid.SmallestStepDiv2, ileft, int(ileft), irow, e.grid)
			e.generateObservableFlat(&flat, int(ileft), irow, nodeID, retval)
		}

		if iv.DiscreteRight &&
			!e.grid.CellTraversable(int(iright), proj.TypeIIICheckRow) &&
			e.grid.CellTraversable(int(iright), proj.CheckVisRow) {
			var flat IntervalProjection
			flat.ProjectFlat(iright, iright+e.grid.SmallestStepDiv2, int(iright), irow, e.grid)
			e.generateObservableFlat(&flat, int(iright), irow, nodeID, retval)
		}
		return
	}

	cornerRow := irow
	if int(root.Y) < irow {
		cornerRow = irow + 1
	}

	if iv.DiscreteLeft && e.grid.PointCorner(int(ileft), irow) {
		if !e.grid.CellTraversable(int(ileft)-1, cornerRow) {
			var flat IntervalProjection
			flat.Project(ileft-grid.Epsilon, iright, irow, int(ileft), irow, e.grid)
			e.generateObservableFlat(&flat, int(ileft), irow, nodeID, retval)
		}
		e.splitIntervalMakeSuccessors(proj.MaxLeft, proj.Left, proj.Row, int(ileft), irow, proj.SterileCheckRow, nodeID, retval)
	}

	if iv.DiscreteRight && e.grid.PointCorner(int(iright), irow) {
		if !e.grid.CellTraversable(int(iright), cornerRow) {
			var flat IntervalProjection
			flat.Project(ileft, iright+grid.Epsilon, irow, int(ileft), irow, e.grid)
			e.generateObservableFlat(&flat, int(iright), irow, nodeID, retval)
		}
		e.splitIntervalMakeSuccessors(proj.Right, proj.MaxRight, proj.Row, int(iright), irow, proj.SterileCheckRow, nodeID, retval)
	}
}

func (e *AnyaExpander) flatNodeObs(nodeID NodeID, retval *[]NodeID, proj *IntervalProjection) {
	root := e.arena.Get(nodeID).Root
	e.generateObservableFlat(proj, int(root.X), int(root.Y), nodeID, retval)
}

// generateObservableFlat turns a valid flat projection into a single
// successor, unless pruning drops it: intermediate (non-taut) nodes are
// re-projected further along the row, and dead-end nodes are dropped
// unless they contain the target.
func (e *AnyaExpander) generateObservableFlat(proj *IntervalProjection, rootx, rooty int, parent NodeID, retval *[]NodeID) {
	if proj.Row != rooty {
		panic("search: projection and root must be on the same row")
	}
	if !proj.Valid {
		return
	}

	goalInterval := e.containsTarget(proj.Left, proj.Right, proj.Row)
	if proj.Intermediate && e.prune && !goalInterval {
		proj.Project(proj.Left, proj.Right, proj.Row, rootx, rooty, e.grid)
		goalInterval = e.containsTarget(proj.Left, proj.Right, proj.Row)
	}

	if !proj.DeadEnd || !e.prune || goalInterval {
		id := e.newSuccessor(proj.Left, proj.Right, proj.Row, rootx, rooty, parent)
		*retval = append(*retval, id)
	}
}

func (e *AnyaExpander) flatNodeNobs(nodeID NodeID, retval *[]NodeID, proj *IntervalProjection) {
	if !proj.Valid {
		return
	}

	node := e.arena.Get(nodeID)
	iv, root := node.Interval, node.Root

	newRooty := iv.Row
	var newRootx int
	if root.X <= iv.Left() {
		newRootx = int(iv.Right())
	} else {
		newRootx = int(iv.Left())
	}

	e.splitIntervalMakeSuccessors(proj.Left, proj.Right, proj.Row, newRootx, newRooty, proj.SterileCheckRow, nodeID, retval)
}

// Hash returns the root-hash used to key redundant-root pruning during
// search: two nodes with the same hash share a root point.
func (e *AnyaExpander) Hash(id NodeID) int {
	root := e.arena.Get(id).Root
	return int(root.Y)*e.grid.Width() + int(root.X)
}
