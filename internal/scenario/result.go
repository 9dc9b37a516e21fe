package scenario

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/anyaeng/anya/internal/grid"
)

// Result is one experiment's outcome, matching the result file's columns.
type Result struct {
	Exp        int
	PathFound  bool
	Alg        string
	WallTimeUS int64
	RunTimeUS  int64
	Expanded   int
	Generated  int
	HeapOps    int
	Start      grid.Point
	Target     grid.Point
	GridCost   float64
	RealCost   float64
	Map        string
}

var resultHeader = []string{
	"exp", "path_found", "alg", "wallt_micro", "runt_micro",
	"expanded", "generated", "heapops", "start", "target",
	"gridcost", "realcost", "map",
}

// Writer emits Results as semicolon-separated CSV rows, matching the
// engine's result-file format.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w with a ';'-delimited CSV writer and emits the header
// row immediately.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(resultHeader); err != nil {
		return nil, fmt.Errorf("writing result header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

// Write appends one experiment's result row.
func (rw *Writer) Write(r Result) error {
	row := []string{
		fmt.Sprintf("%d", r.Exp),
		fmt.Sprintf("%t", r.PathFound),
		r.Alg,
		fmt.Sprintf("%d", r.WallTimeUS),
		fmt.Sprintf("%d", r.RunTimeUS),
		fmt.Sprintf("%d", r.Expanded),
		fmt.Sprintf("%d", r.Generated),
		fmt.Sprintf("%d", r.HeapOps),
		r.Start.String(),
		r.Target.String(),
		fmt.Sprintf("%v", r.GridCost),
		fmt.Sprintf("%v", r.RealCost),
		r.Map,
	}
	if err := rw.csv.Write(row); err != nil {
		return fmt.Errorf("writing result row: %w", err)
	}
	return nil
}

// Flush flushes buffered rows and reports any write error encountered.
func (rw *Writer) Flush() error {
	rw.csv.Flush()
	return rw.csv.Error()
}
