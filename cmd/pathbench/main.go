package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wayfarer-games/wayfarer/internal/config"
	"github.com/wayfarer-games/wayfarer/internal/nav/grid"
	"github.com/wayfarer-games/wayfarer/internal/scenario"
)

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
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	scenarioPath := flag.String("scenario", "", "scenario YAML file (optional, open field without it)")
	configPath := flag.String("config", "config/nav.yaml", "nav config YAML file")
	agents := flag.Int("agents", 8, "concurrent planning agents")
	queries := flag.Int("queries", 1000, "queries per agent")
	seed := flag.Int64("seed", 1, "random seed base")
	flag.Parse()

	cfg, err := config.LoadNav(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	planner, err := grid.New(cfg.Planar.GridConfig())
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	if *scenarioPath != "" {
		sc, err := scenario.Load(*scenarioPath)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}
		if sc.Planar == nil {
			return fmt.Errorf("scenario %s has no planar section", *scenarioPath)
		}
		sc.Planar.Apply(planner)
		slog.Info("scenario loaded", "name", sc.Name)
	}

	gc := cfg.Planar.GridConfig()
	slog.Info("benchmark starting",
		"agents", *agents, "queries_per_agent", *queries,
		"world", fmt.Sprintf("%.0fx%.0f", gc.WorldWidth, gc.WorldHeight))

	var successes, failures atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for a := 0; a < *agents; a++ {
		rng := rand.New(rand.NewSource(*seed + int64(a)))
		g.Go(func() error {
			for q := 0; q < *queries; q++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				from := grid.Point{X: rng.Float64() * gc.WorldWidth, Z: rng.Float64() * gc.WorldHeight}
				to := grid.Point{X: rng.Float64() * gc.WorldWidth, Z: rng.Float64() * gc.WorldHeight}
				res := planner.FindPath(from, to, grid.Options{})
				if res.Success {
					successes.Add(1)
				} else {
					failures.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	stats := planner.Stats()
	total := successes.Load() + failures.Load()

	slog.Info("benchmark finished",
		"elapsed", elapsed,
		"queries", total,
		"queries_per_sec", float64(total)/elapsed.Seconds(),
		"successes", successes.Load(),
		"failures", failures.Load())
	slog.Info("planner stats",
		"paths_calculated", stats.PathsCalculated,
		"cache_hits", stats.CacheHits,
		"avg_nodes_per_search", stats.AverageNodesSearched())

	return nil
}
