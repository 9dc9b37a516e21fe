package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeByThreeMap = `type octile
height 3
width 3
map
...
.@.
...
`

func TestLoadMap(t *testing.T) {
	g, err := LoadMap(strings.NewReader(threeByThreeMap))
	require.NoError(t, err)
	assert.Equal(t, 3, g.WidthOriginal())
	assert.Equal(t, 3, g.HeightOriginal())
	assert.True(t, g.CellTraversable(0, 0))
	assert.False(t, g.CellTraversable(1, 1))
}

func TestLoadMapBadType(t *testing.T) {
	bad := "type square\nheight 1\nwidth 1\nmap\n.\n"
	_, err := LoadMap(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestLoadMapShortRow(t *testing.T) {
	bad := "type octile\nheight 2\nwidth 3\nmap\n..\n...\n"
	_, err := LoadMap(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
