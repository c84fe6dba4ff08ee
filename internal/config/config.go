// Package config loads planner configuration from YAML files, falling
// back to documented defaults when a file or field is absent.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wayfarer-games/wayfarer/internal/nav/grid"
	"github.com/wayfarer-games/wayfarer/internal/nav/voxel"
)

// Nav holds all pathfinding engine configuration.
type Nav struct {
	Planar Planar `yaml:"planar"`
	Voxel  Voxel  `yaml:"voxel"`
}

// Planar configures the 2D terrain-aware planner.
type Planar struct {
	CellSize       float64 `yaml:"cell_size"`
	WorldWidth     float64 `yaml:"world_width"`
	WorldHeight    float64 `yaml:"world_height"`
	MaxSearchNodes int     `yaml:"max_search_nodes"`
	AllowDiagonal  bool    `yaml:"allow_diagonal"`
	CacheTTLMillis int     `yaml:"cache_ttl_ms"`
	CacheCapacity  int     `yaml:"cache_capacity"`
}

// Voxel configures the 3D Z-level planner.
type Voxel struct {
	MaxSearchNodes  int     `yaml:"max_search_nodes"`
	AllowDiagonal   bool    `yaml:"allow_diagonal"`
	MaxZLevelChange int     `yaml:"max_z_level_change"`
	FlatCost        float64 `yaml:"flat_cost"`
	DiagonalCost    float64 `yaml:"diagonal_cost"`
	StairsCost      float64 `yaml:"stairs_cost"`
	LadderCost      float64 `yaml:"ladder_cost"`
	RampCost        float64 `yaml:"ramp_cost"`
	VerticalCost    float64 `yaml:"vertical_cost"`
}

// DefaultNav returns Nav config with the documented defaults.
func DefaultNav() Nav {
	return Nav{
		Planar: Planar{
			CellSize:       32,
			WorldWidth:     10000,
			WorldHeight:    10000,
			MaxSearchNodes: 1000,
			AllowDiagonal:  true,
			CacheTTLMillis: 5000,
			CacheCapacity:  100,
		},
		Voxel: Voxel{
			MaxSearchNodes:  2000,
			AllowDiagonal:   true,
			MaxZLevelChange: 10,
			FlatCost:        1.0,
			DiagonalCost:    1.414,
			StairsCost:      2.0,
			LadderCost:      2.5,
			RampCost:        1.5,
			VerticalCost:    1.5,
		},
	}
}

// LoadNav loads nav config from a YAML file. A missing file returns
// defaults; present fields override them.
func LoadNav(path string) (Nav, error) {
	cfg := DefaultNav()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// GridConfig maps the planar section onto the planner's Config.
func (p Planar) GridConfig() grid.Config {
	return grid.Config{
		CellSize:       p.CellSize,
		WorldWidth:     p.WorldWidth,
		WorldHeight:    p.WorldHeight,
		MaxSearchNodes: p.MaxSearchNodes,
		AllowDiagonal:  p.AllowDiagonal,
		CacheTTL:       time.Duration(p.CacheTTLMillis) * time.Millisecond,
		CacheCapacity:  p.CacheCapacity,
	}
}

// VoxelConfig maps the voxel section onto the planner's Config.
func (v Voxel) VoxelConfig() voxel.Config {
	return voxel.Config{
		MaxSearchNodes:  v.MaxSearchNodes,
		AllowDiagonal:   v.AllowDiagonal,
		MaxZLevelChange: v.MaxZLevelChange,
		Costs: voxel.Costs{
			Flat:     v.FlatCost,
			Diagonal: v.DiagonalCost,
			Stairs:   v.StairsCost,
			Ladder:   v.LadderCost,
			Ramp:     v.RampCost,
			Vertical: v.VerticalCost,
		},
	}
}
