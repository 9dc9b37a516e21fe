package scenario

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anyaeng/anya/internal/grid"
	"github.com/anyaeng/anya/internal/search"
)

const algName = "anya"

// Runner fans experiments out over a shared, read-only grid. Each
// experiment gets its own search.Search and search.AnyaExpander — the
// engine's single-threaded guarantee is per-Search, not per-grid, so
// concurrent experiments against one BitpackedGrid are safe as long as
// each owns its own search state, per spec.md §5.
type Runner struct {
	grid           *grid.BitpackedGrid
	mapName        string
	maxConcurrency int
}

// NewRunner builds a Runner over g. maxConcurrency <= 0 means
// runtime.GOMAXPROCS(0).
func NewRunner(g *grid.BitpackedGrid, mapName string, maxConcurrency int) *Runner {
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.GOMAXPROCS(0)
	}
	return &Runner{grid: g, mapName: mapName, maxConcurrency: maxConcurrency}
}

// Run executes every experiment concurrently (bounded by maxConcurrency),
// writing results into a slice indexed by experiment position so no mutex
// is needed around the result sink, then streams them through w in order.
func (r *Runner) Run(ctx context.Context, experiments []Experiment, w io.Writer) error {
	results := make([]Result, len(experiments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)

	for i, exp := range experiments {
		i, exp := i, exp
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = r.runOne(i, exp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("running experiments: %w", err)
	}

	rw, err := NewWriter(w)
	if err != nil {
		return err
	}
	for _, res := range results {
		if err := rw.Write(res); err != nil {
			return err
		}
	}
	return rw.Flush()
}

func (r *Runner) runOne(idx int, exp Experiment) Result {
	arena := &search.Arena{}
	expander := search.NewAnyaExpander(r.grid, arena, true)
	s := search.NewSearch(expander, arena)

	start := arena.New(grid.Point{X: float64(exp.StartX), Y: float64(exp.StartY)},
		*grid.NewInterval(float64(exp.StartX), float64(exp.StartX), exp.StartY), search.NilNode)
	target := arena.New(grid.Point{X: float64(exp.TargetX), Y: float64(exp.TargetY)},
		*grid.NewInterval(float64(exp.TargetX), float64(exp.TargetX), exp.TargetY), search.NilNode)

	wallStart := time.Now()
	runStart := time.Now()
	cost := s.SearchCostOnly(start, target)
	runElapsed := time.Since(runStart)
	wallElapsed := time.Since(wallStart)

	return Result{
		Exp:        idx,
		PathFound:  s.PathFound(),
		Alg:        algName,
		WallTimeUS: wallElapsed.Microseconds(),
		RunTimeUS:  runElapsed.Microseconds(),
		Expanded:   s.Expanded,
		Generated:  s.Generated,
		HeapOps:    s.HeapOps,
		Start:      grid.Point{X: float64(exp.StartX), Y: float64(exp.StartY)},
		Target:     grid.Point{X: float64(exp.TargetX), Y: float64(exp.TargetY)},
		GridCost:   exp.UpperBound,
		RealCost:   cost,
		Map:        r.mapName,
	}
}
