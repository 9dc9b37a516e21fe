// Command anyasolve solves one ad-hoc start/target pair on one map and
// prints the reconstructed path to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anyaeng/anya/internal/config"
	"github.com/anyaeng/anya/internal/grid"
	"github.com/anyaeng/anya/internal/scenario"
	"github.com/anyaeng/anya/internal/search"
)

const ConfigPath = "config/engine.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(_ context.Context) error {
	mapPath := flag.String("map", "", "path to an octile map file")
	cfgPath := flag.String("config", ConfigPath, "path to engine config YAML")
	sx := flag.Int("sx", 0, "start x")
	sy := flag.Int("sy", 0, "start y")
	tx := flag.Int("tx", 0, "target x")
	ty := flag.Int("ty", 0, "target y")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *mapPath == "" {
		return fmt.Errorf("missing required -map flag")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if _, err := config.LoadEngine(*cfgPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mapFile, err := os.Open(*mapPath)
	if err != nil {
		return fmt.Errorf("opening map file: %w", err)
	}
	defer mapFile.Close()

	g, err := scenario.LoadMap(mapFile)
	if err != nil {
		return fmt.Errorf("parsing map: %w", err)
	}

	arena := &search.Arena{}
	expander := search.NewAnyaExpander(g, arena, true)
	s := search.NewSearch(expander, arena)

	start := arena.New(grid.Point{X: float64(*sx), Y: float64(*sy)},
		*grid.NewInterval(float64(*sx), float64(*sx), *sy), search.NilNode)
	target := arena.New(grid.Point{X: float64(*tx), Y: float64(*ty)},
		*grid.NewInterval(float64(*tx), float64(*tx), *ty), search.NilNode)

	path := s.Search(start, target)
	if path == nil {
		fmt.Println("path_found: false")
		return nil
	}

	fmt.Printf("path_found: true, cost: %.6f\n", pathCost(path))
	for _, p := range path.Waypoints() {
		fmt.Println(p.String())
	}
	return nil
}

func pathCost(path *search.Path) float64 {
	last := path
	for last.Next != nil {
		last = last.Next
	}
	return last.Cost
}
