package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors surfaced by LoadMap. Wrapped with fmt.Errorf("...: %w", ...)
// so callers can test with errors.Is while still getting a descriptive
// message.
var (
	ErrBadHeader         = errors.New("bad map header")
	ErrDimensionMismatch = errors.New("map row does not match declared width/height")
)

// LoadMap reads an ascii "octile" map file:
//
//	type octile
//	height <H>
//	width <W>
//	map
//	<H lines, each W characters: '.' or 'G' = traversable, else blocked>
//
// Any other declared type is rejected.
func LoadMap(r io.Reader) (*BitpackedGrid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	line := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimRight(sc.Text(), "\r\n"), true
	}

	typeLine, ok := line()
	if !ok {
		return nil, fmt.Errorf("%w: missing type line", ErrBadHeader)
	}
	typeFields := strings.Fields(typeLine)
	if len(typeFields) != 2 || typeFields[0] != "type" || typeFields[1] != "octile" {
		return nil, fmt.Errorf("%w: unsupported map type %q", ErrBadHeader, typeLine)
	}

	height, err := readDimLine("height")(line)
	if err != nil {
		return nil, err
	}
	width, err := readDimLine("width")(line)
	if err != nil {
		return nil, err
	}

	mapLine, ok := line()
	if !ok || strings.TrimSpace(mapLine) != "map" {
		return nil, fmt.Errorf("%w: expected \"map\" marker, got %q", ErrBadHeader, mapLine)
	}

	g := NewBitpackedGrid(width, height)
	for y := 0; y < height; y++ {
		row, ok := line()
		if !ok || len(row) < width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			traversable := row[x] == '.' || row[x] == 'G'
			g.SetCellTraversable(x, y, traversable)
		}
	}

	return g, nil
}

func readDimLine(name string) func(func() (string, bool)) (int, error) {
	return func(line func() (string, bool)) (int, error) {
		l, ok := line()
		if !ok {
			return 0, fmt.Errorf("%w: missing %s line", ErrBadHeader, name)
		}
		fields := strings.Fields(l)
		if len(fields) != 2 || fields[0] != name {
			return 0, fmt.Errorf("%w: expected %q line, got %q", ErrBadHeader, name, l)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s %q: %v", ErrBadHeader, name, fields[1], err)
		}
		return v, nil
	}
}
