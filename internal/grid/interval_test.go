package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalCovers(t *testing.T) {
	a, c, d, b, r := 1.0, 3.0, 4.0, 6.0, 2
	outer := NewInterval(a, b, r)
	inner := NewInterval(c, d, r)
	assert.True(t, outer.Covers(inner))

	otherRow := NewInterval(c, d, r+1)
	assert.False(t, outer.Covers(otherRow))
}

func TestIntervalContainsTolerance(t *testing.T) {
	iv := NewInterval(2, 7, 1)
	assert.True(t, iv.Contains(Point{X: 7 + 1e-10, Y: 1}))
	assert.False(t, iv.Contains(Point{X: 7 + 1e-5, Y: 1}))
}

func TestIntervalDiscreteSnap(t *testing.T) {
	iv := NewInterval(3.0000001, 5, 0)
	assert.True(t, iv.DiscreteLeft)
	assert.Equal(t, 3.0, iv.Left())
}

func TestIntervalEqual(t *testing.T) {
	a := NewInterval(1, 2, 0)
	b := NewInterval(1, 2, 0)
	assert.True(t, a.Equal(b))

	c := NewInterval(1, 2, 1)
	assert.False(t, a.Equal(c))
}
