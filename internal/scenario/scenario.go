// Package scenario loads world descriptions for the planners from YAML
// files: a planar terrain grid drawn as legend+rows, obstacle lists, a
// sparse voxel block list, and the queries to run against them. Used by
// the cmd tools and integration tests.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayfarer-games/wayfarer/internal/nav/grid"
	"github.com/wayfarer-games/wayfarer/internal/nav/voxel"
)

// File is a parsed scenario.
type File struct {
	Name    string  `yaml:"name"`
	Planar  *Planar `yaml:"planar"`
	Voxel   *Voxel  `yaml:"voxel"`
	Queries []Query `yaml:"queries"`
}

// Planar describes the 2D world: a character grid where each rune maps
// through the legend to a terrain classification, one character per
// planner cell.
type Planar struct {
	CellSize  float64            `yaml:"cell_size"`
	Legend    map[string]string  `yaml:"legend"`
	Rows      []string           `yaml:"rows"`
	Costs     map[string]float64 `yaml:"costs"`
	Obstacles []ObstacleDef      `yaml:"obstacles"`
}

// ObstacleDef is a circular blocker in world coordinates.
type ObstacleDef struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// Voxel describes the 3D world: solid ground below GroundLevel plus a
// sparse list of block overrides.
type Voxel struct {
	GroundLevel int        `yaml:"ground_level"`
	Blocks      []BlockDef `yaml:"blocks"`
}

// BlockDef places one block by kind. Recognized kinds: solid, ladder,
// stairs, ramp_north, ramp_south, ramp_east, ramp_west.
type BlockDef struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Z    int    `yaml:"z"`
	Kind string `yaml:"kind"`
}

// Query is one planning request replayed by the cmd tools.
type Query struct {
	Kind   string `yaml:"kind"` // "planar" or "voxel"
	From   Coord  `yaml:"from"`
	To     Coord  `yaml:"to"`
	Smooth bool   `yaml:"smooth"`
}

// Coord is a coordinate shared by both planner kinds. Planar queries
// read X and Z as world units; voxel queries truncate all three to
// voxel indices.
type Coord struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if f.Planar != nil {
		if err := f.Planar.validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", path, err)
		}
	}
	if f.Voxel != nil {
		if err := f.Voxel.validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", path, err)
		}
	}

	return &f, nil
}

func (p *Planar) validate() error {
	if p.CellSize <= 0 {
		p.CellSize = 32
	}
	for i, row := range p.Rows {
		for _, r := range row {
			if _, ok := p.Legend[string(r)]; !ok {
				return fmt.Errorf("row %d: rune %q not in legend", i, r)
			}
		}
	}
	return nil
}

func (v *Voxel) validate() error {
	for i, b := range v.Blocks {
		if _, ok := blockKinds[b.Kind]; !ok {
			return fmt.Errorf("block %d: unknown kind %q", i, b.Kind)
		}
	}
	return nil
}

// TerrainProvider builds a provider over the character grid. Positions
// beyond the drawn rows classify as default terrain.
func (p *Planar) TerrainProvider() grid.TerrainProvider {
	cell := p.CellSize
	rows := p.Rows
	legend := p.Legend
	return grid.TerrainFunc(func(x, z float64) grid.Terrain {
		cx := int(x / cell)
		cz := int(z / cell)
		if x < 0 || z < 0 || cz >= len(rows) {
			return grid.DefaultTerrain
		}
		row := []rune(rows[cz])
		if cx >= len(row) {
			return grid.DefaultTerrain
		}
		return grid.Terrain(legend[string(row[cx])])
	})
}

// CostTable builds the planner cost table from the scenario's costs map.
func (p *Planar) CostTable() grid.CostTable {
	t := make(grid.CostTable, len(p.Costs))
	for name, m := range p.Costs {
		t[grid.Terrain(name)] = m
	}
	return t
}

// Apply installs the scenario's terrain, costs, and obstacles on a
// planner.
func (p *Planar) Apply(planner *grid.Planner) {
	planner.SetTerrainData(p.TerrainProvider(), p.CostTable())
	for _, o := range p.Obstacles {
		planner.AddObstacle(grid.Obstacle{ID: o.ID, X: o.X, Z: o.Z, Radius: o.Radius})
	}
}

var blockKinds = map[string]voxel.Block{
	"solid":      {Solid: true},
	"ladder":     {Climbable: true},
	"stairs":     {ConnectsUp: true, ConnectsDown: true},
	"ramp_north": {Ramp: voxel.RampNorth},
	"ramp_south": {Ramp: voxel.RampSouth},
	"ramp_east":  {Ramp: voxel.RampEast},
	"ramp_west":  {Ramp: voxel.RampWest},
}

// World builds the voxel world: solid below ground level, air above,
// with the block list layered on top.
func (v *Voxel) World() voxel.World {
	overrides := make(map[voxel.Position]voxel.Block, len(v.Blocks))
	for _, b := range v.Blocks {
		overrides[voxel.Position{X: b.X, Y: b.Y, Z: b.Z}] = blockKinds[b.Kind]
	}
	ground := v.GroundLevel
	return voxel.WorldFunc(func(x, y, z int) voxel.Block {
		if b, ok := overrides[voxel.Position{X: x, Y: y, Z: z}]; ok {
			return b
		}
		if z < ground {
			return voxel.Block{Solid: true}
		}
		return voxel.Block{}
	})
}
