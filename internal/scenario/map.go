package scenario

import (
	"io"

	"github.com/anyaeng/anya/internal/grid"
)

// LoadMap reads an octile map file. Thin wrapper over grid.LoadMap kept in
// this package so callers only need to import scenario for the batch-run
// surface (map, scenario, and result I/O together).
func LoadMap(r io.Reader) (*grid.BitpackedGrid, error) {
	return grid.LoadMap(r)
}
