package grid

// Terrain classifies a world position for movement-cost lookup.
// Classifications are caller-defined names ("GRASS", "ROAD", "WATER").
type Terrain string

// DefaultTerrain is assumed wherever no terrain provider is configured.
const DefaultTerrain Terrain = "default"

// TerrainProvider yields the terrain classification at a world position.
type TerrainProvider interface {
	TerrainAt(x, z float64) Terrain
}

// TerrainFunc adapts a plain function to a TerrainProvider.
type TerrainFunc func(x, z float64) Terrain

// TerrainAt implements TerrainProvider.
func (f TerrainFunc) TerrainAt(x, z float64) Terrain { return f(x, z) }

// CostTable maps a terrain classification to a positive cost multiplier.
// math.Inf(1) marks the classification impassable. Classifications
// absent from the table cost 1.0.
//
// Multipliers below 1.0 (roads at 0.5) make the octile heuristic
// inadmissible: such paths are still found, but are not guaranteed to be
// the cheapest possible. This mirrors the original engine and is kept as
// a known limitation.
type CostTable map[Terrain]float64

// multiplier returns the cost multiplier for a classification.
func (t CostTable) multiplier(class Terrain) float64 {
	if t == nil {
		return 1.0
	}
	m, ok := t[class]
	if !ok {
		return 1.0
	}
	return m
}
