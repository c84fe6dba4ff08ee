package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wayfarer-games/wayfarer/internal/config"
	"github.com/wayfarer-games/wayfarer/internal/nav/grid"
	"github.com/wayfarer-games/wayfarer/internal/nav/voxel"
	"github.com/wayfarer-games/wayfarer/internal/scenario"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	scenarioPath := flag.String("scenario", "", "scenario YAML file")
	configPath := flag.String("config", "config/nav.yaml", "nav config YAML file")
	flag.Parse()

	if *scenarioPath == "" {
		return fmt.Errorf("-scenario is required")
	}

	cfg, err := config.LoadNav(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	slog.Info("scenario loaded", "name", sc.Name, "queries", len(sc.Queries))

	var planar *grid.Planner
	if sc.Planar != nil {
		planar, err = grid.New(cfg.Planar.GridConfig())
		if err != nil {
			return fmt.Errorf("planar planner: %w", err)
		}
		sc.Planar.Apply(planar)
	}

	var zplanner *voxel.Planner
	if sc.Voxel != nil {
		zplanner, err = voxel.New(sc.Voxel.World(), cfg.Voxel.VoxelConfig())
		if err != nil {
			return fmt.Errorf("voxel planner: %w", err)
		}
	}

	for i, q := range sc.Queries {
		switch q.Kind {
		case "planar":
			if planar == nil {
				return fmt.Errorf("query %d: planar query without planar scenario", i)
			}
			tracePlanar(i, planar, q)
		case "voxel":
			if zplanner == nil {
				return fmt.Errorf("query %d: voxel query without voxel scenario", i)
			}
			traceVoxel(i, zplanner, q)
		default:
			return fmt.Errorf("query %d: unknown kind %q", i, q.Kind)
		}
	}

	return nil
}

func tracePlanar(i int, p *grid.Planner, q scenario.Query) {
	start := grid.Point{X: q.From.X, Z: q.From.Z}
	goal := grid.Point{X: q.To.X, Z: q.To.Z}
	res := p.FindPath(start, goal, grid.Options{Smooth: q.Smooth})

	if !res.Success {
		slog.Warn("planar query failed",
			"query", i, "reason", res.Reason, "nodes", res.NodesSearched)
		return
	}
	slog.Info("planar path found",
		"query", i, "waypoints", len(res.Path),
		"nodes", res.NodesSearched, "cached", res.Cached, "direct", res.Direct)
	for j, wp := range res.Path {
		slog.Debug("waypoint", "query", i, "n", j, "x", wp.X, "z", wp.Z)
	}
}

func traceVoxel(i int, p *voxel.Planner, q scenario.Query) {
	start := voxel.Position{X: int(q.From.X), Y: int(q.From.Y), Z: int(q.From.Z)}
	goal := voxel.Position{X: int(q.To.X), Y: int(q.To.Y), Z: int(q.To.Z)}
	res := p.FindPath(start, goal)

	if !res.Success {
		slog.Warn("voxel query failed",
			"query", i, "reason", res.Reason, "nodes", res.NodesSearched)
		return
	}
	slog.Info("voxel path found",
		"query", i, "waypoints", len(res.Path),
		"nodes", res.NodesSearched, "direct", res.Direct)
	for j, wp := range res.Path {
		slog.Debug("waypoint", "query", i, "n", j, "x", wp.X, "y", wp.Y, "z", wp.Z)
	}
}
