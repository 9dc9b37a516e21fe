// Package grid implements the bitpacked grid representation used by the
// Anya search: per-cell traversability plus per-point visibility/corner
// classification, stored as word-parallel bitmaps so left/right row scans
// can be done with hardware bit-scan primitives instead of per-cell loops.
package grid

import "math/bits"

// Word-level layout constants. Bit k of word w holds grid position w*32+k
// within the flattened (row-major) cell array; bit 0 is the leftmost
// position in the word ("little-endian within word").
const (
	BitsPerWord     = 32
	Log2BitsPerWord = 5
	IndexMask       = BitsPerWord - 1

	// Padding is the width (in cells) of the blocked ring surrounding the
	// real grid on every side. It lets every scan walk at least one word
	// past any real row or column without an explicit bounds check.
	Padding = 2

	// Epsilon is the tolerance used for discrete-point snapping and
	// interval-containment widening throughout this package.
	Epsilon = 1e-7
)

// BitpackedGrid is a rectangular grid of traversable/blocked cells plus the
// derived per-discrete-point visible/corner/double_corner classification.
//
// Four bitmaps of identical shape (cells, visible, corner, doubleCorner),
// each map_height*map_width_in_words words wide, back the grid. mapWidth is
// rounded up to a multiple of the word size so every row starts on a word
// boundary.
type BitpackedGrid struct {
	widthOriginal, heightOriginal int
	width, height                 int
	widthInWords                  int

	cells, visible, corner, doubleCorner []uint32

	// SmallestStep is the smallest distance between two adjacent points on
	// the grid; SmallestStepDiv2 is that value halved, used repeatedly to
	// nudge a continuous coordinate into the cell it denotes.
	SmallestStep     float64
	SmallestStepDiv2 float64
}

// NewBitpackedGrid allocates an all-blocked grid of the given original
// width/height, with the padding ring applied.
func NewBitpackedGrid(width, height int) *BitpackedGrid {
	g := &BitpackedGrid{}
	g.init(width, height)
	return g
}

func (g *BitpackedGrid) init(width, height int) {
	g.heightOriginal = height
	g.widthOriginal = width
	g.widthInWords = (width >> Log2BitsPerWord) + 1
	g.width = g.widthInWords << Log2BitsPerWord
	g.height = height + 2*Padding

	size := (g.height * g.width) >> Log2BitsPerWord
	g.cells = make([]uint32, size)
	g.visible = make([]uint32, size)
	g.corner = make([]uint32, size)
	g.doubleCorner = make([]uint32, size)

	g.SmallestStep = min(1/float64(g.width), 1/float64(g.height))
	g.SmallestStepDiv2 = g.SmallestStep / 2.0
}

// Width returns the padded grid width in cells (a multiple of 32).
func (g *BitpackedGrid) Width() int { return g.width }

// Height returns the padded grid height in cells.
func (g *BitpackedGrid) Height() int { return g.height }

// WidthOriginal returns the width passed to NewBitpackedGrid/LoadMap.
func (g *BitpackedGrid) WidthOriginal() int { return g.widthOriginal }

// HeightOriginal returns the height passed to NewBitpackedGrid/LoadMap.
func (g *BitpackedGrid) HeightOriginal() int { return g.heightOriginal }

// id computes the flat word-addressable index of discrete point (x,y),
// after shifting into the padded coordinate space.
func (g *BitpackedGrid) id(x, y int) int {
	return (y+Padding)*g.width + (x + Padding)
}

func getBit(elts []uint32, id int) bool {
	word := id >> Log2BitsPerWord
	mask := uint32(1) << uint(id&IndexMask)
	return elts[word]&mask != 0
}

func setBit(elts []uint32, id int, value bool) {
	word := id >> Log2BitsPerWord
	mask := uint32(1) << uint(id&IndexMask)
	if value {
		elts[word] |= mask
	} else {
		elts[word] &^= mask
	}
}

// PointVisible reports whether discrete point (x,y) has at least one
// adjacent traversable cell.
func (g *BitpackedGrid) PointVisible(x, y int) bool {
	return getBit(g.visible, g.id(x, y))
}

// PointCorner reports whether discrete point (x,y) has exactly one, or
// exactly two diagonally-opposite, blocked incident cells (a taut turning
// point).
func (g *BitpackedGrid) PointCorner(x, y int) bool {
	return getBit(g.corner, g.id(x, y))
}

// PointDoubleCorner reports whether discrete point (x,y) has exactly two
// diagonally-opposite blocked incident cells (an ambiguous pinch point).
func (g *BitpackedGrid) PointDoubleCorner(x, y int) bool {
	return getBit(g.doubleCorner, g.id(x, y))
}

// CellTraversable reports whether cell (cx,cy) is unblocked.
func (g *BitpackedGrid) CellTraversable(cx, cy int) bool {
	return getBit(g.cells, g.id(cx, cy))
}

// PointDiscrete reports whether x is within SmallestStep of an integer.
func (g *BitpackedGrid) PointDiscrete(x float64) bool {
	rounded := float64(int(x + g.SmallestStepDiv2))
	return abs(rounded-x) < g.SmallestStep
}

// SetCellTraversable sets cell (cx,cy)'s traversability and recomputes the
// visible/corner/double_corner classification of its four corner points.
func (g *BitpackedGrid) SetCellTraversable(cx, cy int, value bool) {
	setBit(g.cells, g.id(cx, cy), value)
	g.updatePoint(cx, cy)
	g.updatePoint(cx+1, cy)
	g.updatePoint(cx, cy+1)
	g.updatePoint(cx+1, cy+1)
}

// updatePoint recomputes the visible/corner/double_corner bits of discrete
// point (px,py) from the traversability of its four incident cells.
func (g *BitpackedGrid) updatePoint(px, py int) {
	nw := g.CellTraversable(px-1, py-1)
	ne := g.CellTraversable(px, py-1)
	sw := g.CellTraversable(px-1, py)
	se := g.CellTraversable(px, py)

	corner := ((!nw || !se) && sw && ne) || ((!ne || !sw) && nw && se)
	doubleCorner := ((!nw && !se) && sw && ne) != ((!sw && !ne) && nw && se)
	visible := nw || ne || sw || se

	id := g.id(px, py)
	setBit(g.corner, id, corner)
	setBit(g.doubleCorner, id, doubleCorner)
	setBit(g.visible, id, visible)
}

// ScanCellsRight starts at cell (x,y) and returns the x-coordinate of the
// first blocked cell reached moving rightward on row y.
func (g *BitpackedGrid) ScanCellsRight(x, y int) int {
	tileID := g.id(x, y)
	tIndex := tileID >> Log2BitsPerWord

	obstacles := ^g.cells[tIndex]
	startBit := tileID & IndexMask
	obstacles &^= uint32(1)<<uint(startBit) - 1

	startIndex := tIndex
	stopPos := 0
	for {
		if obstacles != 0 {
			stopPos = bits.TrailingZeros32(obstacles)
			break
		}
		tIndex++
		obstacles = ^g.cells[tIndex]
	}

	retval := (tIndex-startIndex)*BitsPerWord + (stopPos - startBit)
	return x + retval
}

// ScanCellsLeft starts at cell (x,y) and returns the x-coordinate of the
// first blocked cell reached moving leftward on row y.
func (g *BitpackedGrid) ScanCellsLeft(x, y int) int {
	tileID := g.id(x, y)
	tIndex := tileID >> Log2BitsPerWord

	obstacles := ^g.cells[tIndex]
	startBit := tileID & IndexMask
	oppositeIndex := BitsPerWord - (startBit + 1)
	mask := uint32(1) << uint(startBit)
	mask |= mask - 1
	obstacles &= mask

	startIndex := tIndex
	stopPos := 0
	for {
		if obstacles != 0 {
			stopPos = bits.LeadingZeros32(obstacles)
			break
		}
		tIndex--
		obstacles = ^g.cells[tIndex]
	}

	retval := (startIndex-tIndex)*BitsPerWord + (stopPos - oppositeIndex)
	return x - retval
}

// ScanRight scans right along the lattice between rows row-1 and row,
// starting at real coordinate x, and returns the x of the next discrete
// point that is either a corner or the last traversable point before a
// cell obstacle in either adjacent row.
func (g *BitpackedGrid) ScanRight(x float64, row int) int {
	leftOfX := int(x + g.SmallestStepDiv2)
	tileID := g.id(leftOfX, row)
	tIndex := tileID >> Log2BitsPerWord
	taIndex := tIndex - g.widthInWords

	cells := g.cells[tIndex]
	cellsAbove := g.cells[taIndex]
	obstacles := ^cells & ^cellsAbove
	corners := g.corner[tIndex]

	startBit := tileID & IndexMask
	mask := uint32(1) << uint(startBit)
	// corners strictly to the right of start; obstacles weakly to the
	// right (the traversability of the starting cell matters for
	// obstacles, since we are scanning cells, not just corners).
	corners &^= mask | (mask - 1)
	obstacles &^= mask - 1

	startIndex := tIndex
	stopPos := 0
	for {
		value := corners | obstacles
		if value != 0 {
			stopPos = bits.TrailingZeros32(value)
			break
		}
		tIndex++
		taIndex++
		corners = g.corner[tIndex]
		obstacles = ^g.cells[tIndex] & ^g.cells[taIndex]
	}

	retval := leftOfX + (tIndex-startIndex)*BitsPerWord + stopPos
	retval -= startBit
	return retval
}

// ScanLeft scans left along the lattice between rows row-1 and row,
// starting at real coordinate x, and returns the x of the next discrete
// point that is either a corner or the last traversable point before a
// cell obstacle in either adjacent row.
func (g *BitpackedGrid) ScanLeft(x float64, row int) int {
	leftOfX := int(x)
	// early return: the next discrete point left of x is already a corner.
	if x-float64(leftOfX) >= g.SmallestStep && g.PointCorner(leftOfX, row) {
		return leftOfX
	}

	tileID := g.id(leftOfX, row)
	tIndex := tileID >> Log2BitsPerWord
	taIndex := tIndex - g.widthInWords

	cells := g.cells[tIndex]
	cellsAbove := g.cells[taIndex]
	obstacles := ^cells & ^cellsAbove
	corners := g.corner[tIndex]

	startBit := tileID & IndexMask
	mask := uint32(1)<<uint(startBit) - 1
	// ignore positions >= start (to the right); scanning cells lets us
	// safely ignore the current position, since its own traversability
	// has no bearing on whether we can travel away from it to the left.
	corners &= mask
	obstacles &= mask

	startIndex := tIndex
	stopPos := 0
	for {
		value := corners | obstacles
		if value != 0 {
			// Corners must stop exactly at the set bit (+1 adjustment);
			// obstacles must stop one position before it. Take whichever
			// is closer.
			stopPos = min(bits.LeadingZeros32(corners)+1, bits.LeadingZeros32(obstacles))
			break
		}
		tIndex--
		taIndex--
		corners = g.corner[tIndex]
		obstacles = ^g.cells[tIndex] & ^g.cells[taIndex]
	}

	retval := leftOfX - ((startIndex-tIndex)*BitsPerWord + stopPos)
	retval += BitsPerWord - startBit
	return retval
}

// NumTraversableCells counts the traversable cells within the original
// (unpadded) grid dimensions.
func (g *BitpackedGrid) NumTraversableCells() int {
	n := 0
	for x := 0; x < g.widthOriginal; x++ {
		for y := 0; y < g.heightOriginal; y++ {
			if g.CellTraversable(x, y) {
				n++
			}
		}
	}
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
