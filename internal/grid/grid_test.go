package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openGrid builds a width x height grid with every cell traversable, then
// blocks the (x,y) cells named in blocked.
func openGrid(t *testing.T, width, height int, blocked [][2]int) *BitpackedGrid {
	t.Helper()
	g := NewBitpackedGrid(width, height)
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

func TestCellTraversable(t *testing.T) {
	g := openGrid(t, 5, 5, [][2]int{{2, 2}})
	assert.True(t, g.CellTraversable(0, 0))
	assert.False(t, g.CellTraversable(2, 2))
}

func TestPointClassificationAllOpen(t *testing.T) {
	g := openGrid(t, 5, 5, nil)
	// interior points of an all-open grid are visible but never corners.
	assert.True(t, g.PointVisible(2, 2))
	assert.False(t, g.PointCorner(2, 2))
	assert.False(t, g.PointDoubleCorner(2, 2))
}

func TestPointClassificationSingleBlockedCorner(t *testing.T) {
	g := openGrid(t, 5, 5, [][2]int{{2, 2}})
	// The four corners of the blocked cell each have exactly one blocked
	// incident cell, so each is a corner (invariant: corner => visible).
	for _, p := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		assert.True(t, g.PointCorner(p[0], p[1]), "point %v should be a corner", p)
		assert.True(t, g.PointVisible(p[0], p[1]))
		assert.False(t, g.PointDoubleCorner(p[0], p[1]))
	}
}

func TestPointClassificationDoubleCorner(t *testing.T) {
	// ".@" / "@." — blocks (1,0) and (0,1); point (1,1) sees NW=open(0,0),
	// NE=blocked(1,0), SW=blocked(0,1), SE=open(1,1): two diagonally
	// opposite blocked cells => double corner.
	g := openGrid(t, 2, 2, [][2]int{{1, 0}, {0, 1}})
	assert.True(t, g.PointDoubleCorner(1, 1))
	assert.True(t, g.PointCorner(1, 1))
	assert.True(t, g.PointVisible(1, 1))
}

func TestScanCellsRoundTrip(t *testing.T) {
	// property 3: scan_cells_right(scan_cells_left(x,y),y)-1 == x for x
	// inside an open run of traversable cells.
	g := openGrid(t, 20, 3, [][2]int{{5, 1}, {14, 1}})
	for x := 6; x <= 13; x++ {
		left := g.ScanCellsLeft(x, 1)
		right := g.ScanCellsRight(left, 1)
		assert.Equal(t, x, right-1, "round trip failed for x=%d", x)
	}
}

func TestScanCellsRightFindsWall(t *testing.T) {
	g := openGrid(t, 10, 3, [][2]int{{6, 1}})
	assert.Equal(t, 6, g.ScanCellsRight(2, 1))
}

func TestScanCellsLeftFindsWall(t *testing.T) {
	g := openGrid(t, 10, 3, [][2]int{{3, 1}})
	assert.Equal(t, 3, g.ScanCellsLeft(8, 1))
}

func TestScanRightStopsAtCorner(t *testing.T) {
	// open corridor with a single blocked cell creating a corner at x=5.
	g := openGrid(t, 10, 3, [][2]int{{5, 1}})
	x := g.ScanRight(1, 1)
	assert.Equal(t, 5, x)
}

func TestScanLeftStopsAtCorner(t *testing.T) {
	g := openGrid(t, 10, 3, [][2]int{{5, 1}})
	x := g.ScanLeft(9, 1)
	assert.Equal(t, 6, x)
}

func TestNumTraversableCells(t *testing.T) {
	g := openGrid(t, 4, 4, [][2]int{{0, 0}, {1, 1}})
	require.Equal(t, 14, g.NumTraversableCells())
}
