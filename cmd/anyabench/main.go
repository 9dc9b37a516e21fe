// Command anyabench runs a batch of experiments from a scenario file
// against one map and writes a semicolon-separated result CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/anyaeng/anya/internal/config"
	"github.com/anyaeng/anya/internal/scenario"
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

func run(ctx context.Context) error {
	scenName := flag.String("scen", "", "scenario file name, relative to Config.ScenarioDir")
	cfgPath := flag.String("config", ConfigPath, "path to engine config YAML")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *scenName == "" {
		return fmt.Errorf("missing required -scen flag")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadEngine(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	slog.Info("anyabench starting", "scenario", *scenName, "map_dir", cfg.MapDir, "max_concurrency", cfg.MaxConcurrency)

	scenFile, err := os.Open(filepath.Join(cfg.ScenarioDir, *scenName))
	if err != nil {
		return fmt.Errorf("opening scenario file: %w", err)
	}
	defer scenFile.Close()

	experiments, err := scenario.LoadFile(scenFile)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if len(experiments) == 0 {
		slog.Info("no experiments to run; finishing")
		return nil
	}

	mapName := experiments[0].MapName
	mapFile, err := os.Open(filepath.Join(cfg.MapDir, mapName))
	if err != nil {
		return fmt.Errorf("opening map file: %w", err)
	}
	defer mapFile.Close()

	g, err := scenario.LoadMap(mapFile)
	if err != nil {
		return fmt.Errorf("parsing map: %w", err)
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	defer out.Close()

	runner := scenario.NewRunner(g, mapName, cfg.MaxConcurrency)
	if err := runner.Run(ctx, experiments, out); err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	slog.Info("anyabench finished", "experiments", len(experiments), "output", cfg.OutputPath)
	return nil
}
