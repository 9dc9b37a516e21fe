package grid

import "fmt"

// EqualityThreshold is the absolute tolerance used when comparing two
// intervals for equality.
const EqualityThreshold = 1e-7

// Interval is a continuous row segment [Left,Right] on a discrete row,
// with cached flags recording whether each endpoint sits within Epsilon of
// an integer (a "discrete" endpoint, snapped to that integer).
type Interval struct {
	left, right int
	// leftF/rightF hold the un-snapped float endpoints as passed in;
	// Left/Right return the snapped left/right instead whenever
	// DiscreteLeft/DiscreteRight.
	leftF, rightF float64

	Row int

	DiscreteLeft  bool
	DiscreteRight bool
}

// NewInterval builds an interval with the given endpoints and row, applying
// discrete-endpoint snapping to both.
func NewInterval(left, right float64, row int) *Interval {
	iv := &Interval{Row: row}
	iv.SetLeft(left)
	iv.SetRight(right)
	return iv
}

// Left returns the interval's left endpoint.
func (iv *Interval) Left() float64 {
	if iv.DiscreteLeft {
		return float64(iv.left)
	}
	return iv.leftF
}

// SetLeft sets the left endpoint, snapping it to the nearest integer when
// it lies within Epsilon of one.
func (iv *Interval) SetLeft(v float64) {
	iv.leftF = v
	iv.DiscreteLeft = abs(float64(int(v+Epsilon))-v) < Epsilon
	if iv.DiscreteLeft {
		iv.left = int(v + Epsilon)
	}
}

// Right returns the interval's right endpoint.
func (iv *Interval) Right() float64 {
	if iv.DiscreteRight {
		return float64(iv.right)
	}
	return iv.rightF
}

// SetRight sets the right endpoint, snapping it to the nearest integer when
// it lies within Epsilon of one.
func (iv *Interval) SetRight(v float64) {
	iv.rightF = v
	iv.DiscreteRight = abs(float64(int(v+Epsilon))-v) < Epsilon
	if iv.DiscreteRight {
		iv.right = int(v + Epsilon)
	}
}

// RangeSize returns Right-Left.
func (iv *Interval) RangeSize() float64 {
	return iv.Right() - iv.Left()
}

// Covers reports whether iv is identical to other, or contains it (shared
// endpoints included) on the same row.
func (iv *Interval) Covers(other *Interval) bool {
	if iv.Equal(other) {
		return true
	}
	return iv.Row == other.Row && iv.Left() <= other.Left() && iv.Right() >= other.Right()
}

// Contains reports whether p lies within the interval, widened by Epsilon
// on both sides, on the interval's row.
func (iv *Interval) Contains(p Point) bool {
	return iv.Row == int(p.Y) && iv.Left()-Epsilon <= p.X && iv.Right()+Epsilon >= p.X
}

// Equal reports whether iv and other have the same row and endpoints
// within EqualityThreshold.
func (iv *Interval) Equal(other *Interval) bool {
	if other == nil {
		return false
	}
	return abs(other.Left()-iv.Left()) < EqualityThreshold &&
		abs(other.Right()-iv.Right()) < EqualityThreshold &&
		iv.Row == other.Row
}

func (iv *Interval) String() string {
	return fmt.Sprintf("Interval(left: %v, right: %v, row: %d)", iv.Left(), iv.Right(), iv.Row)
}
