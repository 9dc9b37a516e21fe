package grid

import (
	"fmt"
	"math"
)

// Point is an (x,y) coordinate. X is real-valued — at a projection endpoint
// it may be non-integer — while Y always denotes a discrete row.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v,%v)", trimFloat(p.X), trimFloat(p.Y))
}

// trimFloat renders a float64 as an integer when it carries no fractional
// part, matching the engine's "(x,y)" coordinate rendering convention.
func trimFloat(v float64) any {
	if v == float64(int64(v)) {
		return int64(v)
	}
	return v
}
