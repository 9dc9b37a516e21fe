package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyaeng/anya/internal/grid"
)

// openGrid builds a width x height grid, blocking the given cells.
func openGrid(width, height int, blocked [][2]int) *grid.BitpackedGrid {
	g := grid.NewBitpackedGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.SetCellTraversable(x, y, true)
		}
	}
	for _, b := range blocked {
		g.SetCellTraversable(b[0], b[1], false)
	}
	return g
}

// newInstance builds a fresh arena + expander (pruning enabled) + search,
// and the start/target node ids for the given coordinates (both
// degenerate, single-point intervals, as required of off-grid start/target
// nodes).
func newInstance(g *grid.BitpackedGrid, sx, sy, tx, ty int) (*Arena, *AnyaExpander, *Search, NodeID, NodeID) {
	return newInstancePruned(g, sx, sy, tx, ty, true)
}

// newInstancePruned is newInstance with an explicit prune flag, so tests
// can exercise AnyaExpander's unpruned (prune=false) successor-generation
// path alongside the default pruned one.
func newInstancePruned(g *grid.BitpackedGrid, sx, sy, tx, ty int, prune bool) (*Arena, *AnyaExpander, *Search, NodeID, NodeID) {
	arena := &Arena{}
	expander := NewAnyaExpander(g, arena, prune)
	s := NewSearch(expander, arena)

	start := arena.New(grid.Point{X: float64(sx), Y: float64(sy)}, *grid.NewInterval(float64(sx), float64(sx), sy), NilNode)
	target := arena.New(grid.Point{X: float64(tx), Y: float64(ty)}, *grid.NewInterval(float64(tx), float64(tx), ty), NilNode)
	return arena, expander, s, start, target
}

func TestS1AllFreeDiagonal(t *testing.T) {
	g := openGrid(3, 3, nil)
	_, _, s, start, target := newInstance(g, 0, 0, 2, 2)

	cost := s.SearchCostOnly(start, target)
	require.True(t, s.PathFound())
	assert.InDelta(t, 2*math.Sqrt2, cost, 1e-6)
}

func TestS2RowOfObstacles(t *testing.T) {
	// ... / @@. / ...
	g := openGrid(3, 3, [][2]int{{0, 1}, {1, 1}})
	_, _, s, start, target := newInstance(g, 0, 0, 0, 2)

	cost := s.SearchCostOnly(start, target)
	require.True(t, s.PathFound())
	want := 2 * math.Sqrt(5.0)
	assert.InDelta(t, want, cost, 1e-6)
}

func TestS2RowOfObstaclesUnpruned(t *testing.T) {
	// Same instance as TestS2RowOfObstacles, but with pruning disabled:
	// every taut successor is generated, including the sterile/dead-end/
	// intermediate ones the pruned expander drops. The optimal cost must
	// be unchanged — pruning is an optimization, not a behavior change.
	g := openGrid(3, 3, [][2]int{{0, 1}, {1, 1}})
	_, _, s, start, target := newInstancePruned(g, 0, 0, 0, 2, false)

	cost := s.SearchCostOnly(start, target)
	require.True(t, s.PathFound())
	want := 2 * math.Sqrt(5.0)
	assert.InDelta(t, want, cost, 1e-6)
	assert.GreaterOrEqual(t, s.Generated, 1)
}

func TestS3BlockedTarget(t *testing.T) {
	// ... / .@. / ...
	g := openGrid(3, 3, [][2]int{{1, 1}})
	_, _, s, start, target := newInstance(g, 0, 0, 1, 1)

	cost := s.SearchCostOnly(start, target)
	assert.False(t, s.PathFound())
	assert.Equal(t, -1.0, cost)
}

func TestS4SingleCorridor(t *testing.T) {
	g := openGrid(5, 3, nil)
	_, _, s, start, target := newInstance(g, 0, 1, 4, 1)

	cost := s.SearchCostOnly(start, target)
	require.True(t, s.PathFound())
	assert.InDelta(t, 4.0, cost, 1e-6)
}

func TestS5PinchStart(t *testing.T) {
	// .@ / @.  — blocks (1,0) and (0,1); (1,1) is a double corner.
	g := openGrid(2, 2, [][2]int{{1, 0}, {0, 1}})
	_, _, s, start, target := newInstance(g, 1, 1, 0, 0)

	cost := s.SearchCostOnly(start, target)
	assert.False(t, s.PathFound())
	assert.Equal(t, -1.0, cost)
}

func TestHeuristicAdmissible(t *testing.T) {
	g := openGrid(3, 3, [][2]int{{0, 1}, {1, 1}})
	arena, _, s, start, target := newInstance(g, 0, 0, 0, 2)

	h := Heuristic{}
	hVal := h.Value(arena.Get(start), arena.Get(target))

	cost := s.SearchCostOnly(start, target)
	require.True(t, s.PathFound())
	assert.LessOrEqual(t, hVal, cost+1e-9)

	straight := arena.Get(start).Root.Distance(arena.Get(target).Root)
	assert.GreaterOrEqual(t, cost, straight-1e-9)
}

func TestDeterministicCounters(t *testing.T) {
	g := openGrid(8, 8, [][2]int{{3, 3}, {4, 3}, {3, 4}})
	_, _, s1, start1, target1 := newInstance(g, 0, 0, 7, 7)
	cost1 := s1.SearchCostOnly(start1, target1)

	_, _, s2, start2, target2 := newInstance(g, 0, 0, 7, 7)
	cost2 := s2.SearchCostOnly(start2, target2)

	assert.Equal(t, cost1, cost2)
	assert.Equal(t, s1.Expanded, s2.Expanded)
	assert.Equal(t, s1.Generated, s2.Generated)
	assert.Equal(t, s1.HeapOps, s2.HeapOps)
}

func TestGComputation(t *testing.T) {
	arena := &Arena{}
	expander := NewAnyaExpander(openGrid(5, 5, nil), arena, true)

	parent := arena.New(grid.Point{X: 1, Y: 2}, *grid.NewInterval(1, 1, 2), NilNode)
	arena.Get(parent).G = 20

	childID := expander.newSuccessor(3, 3, 2, 3, 2, parent)
	assert.InDelta(t, 22.0, arena.Get(childID).G, 1e-7)
}

func TestPathReconstruction(t *testing.T) {
	g := openGrid(3, 3, [][2]int{{0, 1}, {1, 1}})
	_, _, s, start, target := newInstance(g, 0, 0, 0, 2)

	path := s.Search(start, target)
	require.NotNil(t, path)

	waypoints := path.Waypoints()
	require.GreaterOrEqual(t, len(waypoints), 2)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, waypoints[0])
	assert.Equal(t, grid.Point{X: 0, Y: 2}, waypoints[len(waypoints)-1])

	total := 0.0
	for i := 1; i < len(waypoints); i++ {
		total += waypoints[i-1].Distance(waypoints[i])
	}
	last := path
	for last.Next != nil {
		last = last.Next
	}
	assert.InDelta(t, last.Cost, total, 1e-6)
}
