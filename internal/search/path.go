package search

import "github.com/anyaeng/anya/internal/grid"

// Path is one corner-to-corner waypoint of a reconstructed route, linked
// toward the next waypoint on the way to the target. A nil *Path means no
// path exists; the final waypoint has Next == nil.
type Path struct {
	Point grid.Point
	Cost  float64
	Next  *Path
}

// Waypoints flattens the linked list into a slice ordered start to target.
func (p *Path) Waypoints() []grid.Point {
	var pts []grid.Point
	for n := p; n != nil; n = n.Next {
		pts = append(pts, n.Point)
	}
	return pts
}
