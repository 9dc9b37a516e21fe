package search

import (
	"fmt"

	"github.com/anyaeng/anya/internal/grid"
)

// IntervalProjection carries the scratch state produced by projecting an
// interval from one grid row onto an adjacent one. A single value is
// reused across calls to Project/ProjectFlat/ProjectCone/ProjectF2C; it
// holds no reference to the node or grid it was last computed from.
type IntervalProjection struct {
	Left, Right       float64
	MaxLeft, MaxRight float64
	Row               int
	Valid             bool
	Observable        bool
	SterileCheckRow   int
	CheckVisRow       int
	TypeIIICheckRow   int
	DeadEnd           bool
	Intermediate      bool
}

// Project routes to ProjectFlat or ProjectCone depending on whether root
// sits on the interval's own row (flat) or off it (conical).
func (p *IntervalProjection) Project(ileft, iright float64, irow int, rootx, rooty int, g *grid.BitpackedGrid) {
	p.Observable = false
	p.Valid = false

	if rooty == irow {
		p.ProjectFlat(ileft, iright, rootx, rooty, g)
	} else {
		p.ProjectCone(ileft, iright, irow, rootx, rooty, g)
	}
}

// ProjectNode is a convenience wrapper that projects a SearchNode's own
// interval and root.
func (p *IntervalProjection) ProjectNode(n *SearchNode, g *grid.BitpackedGrid) {
	p.Project(n.Interval.Left(), n.Interval.Right(), n.Interval.Row, int(n.Root.X), int(n.Root.Y), g)
}

// ProjectCone projects interval [ileft, iright) on row irow onto the row
// immediately above or below, following the line from (rootx, rooty)
// through each endpoint.
func (p *IntervalProjection) ProjectCone(ileft, iright float64, irow int, rootx, rooty int, g *grid.BitpackedGrid) {
	if rooty < irow {
		p.CheckVisRow = irow
		p.Row = irow + 1
		p.SterileCheckRow = p.Row
		p.TypeIIICheckRow = irow - 1
	} else if rooty > irow {
		p.SterileCheckRow = irow - 2
		p.Row = irow - 1
		p.CheckVisRow = p.Row
		p.TypeIIICheckRow = irow
	} else {
		panic(fmt.Sprintf("search: ProjectCone requires rooty != irow, got %d", rooty))
	}

	p.Valid = g.CellTraversable(int(ileft+g.SmallestStepDiv2), p.CheckVisRow) &&
		g.CellTraversable(int(iright-g.SmallestStepDiv2), p.CheckVisRow)
	if !p.Valid {
		return
	}

	rise := float64(abs(irow - rooty))
	lrun := float64(rootx) - ileft
	rrun := iright - float64(rootx)

	p.MaxLeft = float64(g.ScanCellsLeft(int(ileft), p.CheckVisRow) + 1)
	p.Left = max64(ileft-lrun/rise, p.MaxLeft)

	p.MaxRight = float64(g.ScanCellsRight(int(iright), p.CheckVisRow))
	p.Right = min64(iright+rrun/rise, p.MaxRight)

	p.Observable = p.Left < p.Right

	if p.Left >= p.MaxRight {
		if g.CellTraversable(int(ileft-g.SmallestStepDiv2), p.CheckVisRow) {
			p.Left = p.Right
		} else {
			p.Left = p.MaxLeft
		}
	}
	if p.Right <= p.MaxLeft {
		if g.CellTraversable(int(iright), p.CheckVisRow) {
			p.Right = p.Left
		} else {
			p.Right = p.MaxRight
		}
	}
}

// ProjectFlat projects a flat interval further along its own row, away
// from root, stopping at the first obstacle or corner.
func (p *IntervalProjection) ProjectFlat(ileft, iright float64, rootx, rooty int, g *grid.BitpackedGrid) {
	if float64(rootx) <= ileft {
		p.Left = iright
		p.Right = float64(g.ScanRight(p.Left, rooty))
		p.DeadEnd = !(g.CellTraversable(int(p.Right), rooty) &&
			g.CellTraversable(int(p.Right), rooty-1))
	} else {
		p.Right = ileft
		p.Left = float64(g.ScanLeft(p.Right, rooty))
		p.DeadEnd = !(g.CellTraversable(int(p.Left-g.SmallestStepDiv2), rooty) &&
			g.CellTraversable(int(p.Left-g.SmallestStepDiv2), rooty-1))
	}

	p.Intermediate = g.CellTraversable(int(p.Left), rooty) &&
		g.CellTraversable(int(p.Left), rooty-1)

	p.Row = rooty
	p.Valid = p.Left != p.Right
}

// ProjectF2C projects a flat interval around a corner onto the adjacent
// row, turning a flat parent into a conical successor. Unlike ProjectCone
// the result is always non-observable: the successor sees the corner
// point only, not a full open interval from its root.
func (p *IntervalProjection) ProjectF2C(ileft, iright float64, irow int, rootx, rooty int, g *grid.BitpackedGrid) {
	if float64(rootx) <= ileft {
		canStep := g.CellTraversable(int(iright), irow) && g.CellTraversable(int(iright), irow-1)
		if !canStep {
			p.Valid = false
			p.Observable = false
			return
		}

		if !g.CellTraversable(int(iright-1), irow) {
			p.Row = irow + 1
			p.SterileCheckRow = p.Row
			p.CheckVisRow = irow
		} else {
			p.Row = irow - 1
			p.CheckVisRow = p.Row
			p.SterileCheckRow = irow - 2
		}

		p.Left = iright
		p.MaxLeft = p.Left
		p.Right = float64(g.ScanCellsRight(int(p.Left), p.CheckVisRow))
		p.MaxRight = p.Right
	} else {
		if rootx < int(iright) {
			panic(fmt.Sprintf("search: ProjectF2C requires rootx >= iright, got %d and %v", rootx, iright))
		}

		canStep := g.CellTraversable(int(ileft-1), irow) && g.CellTraversable(int(ileft-1), irow-1)
		if !canStep {
			p.Valid = false
			p.Observable = false
			return
		}

		if !g.CellTraversable(int(ileft), irow) {
			p.CheckVisRow = irow
			p.Row = irow + 1
			p.SterileCheckRow = p.Row
		} else {
			p.Row = irow - 1
			p.CheckVisRow = p.Row
			p.SterileCheckRow = irow - 2
		}

		p.Right = ileft
		p.MaxRight = p.Right
		p.Left = float64(g.ScanCellsLeft(int(p.Right-1), p.CheckVisRow) + 1)
		p.MaxLeft = p.Left
	}

	p.Valid = true
	p.Observable = false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
