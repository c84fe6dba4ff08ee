package grid

// Obstacle is a dynamic circular exclusion zone in world coordinates.
type Obstacle struct {
	ID     string
	X, Z   float64
	Radius float64
}

// AddObstacle registers or replaces an obstacle and clears the path
// cache (coarse invalidation, no recompute by affected region).
func (p *Planner) AddObstacle(o Obstacle) {
	p.mu.Lock()
	p.obstacles[o.ID] = o
	p.mu.Unlock()
	p.cache.clear()
}

// UpdateObstacle replaces an existing obstacle by ID. Returns false and
// leaves the cache intact when the ID is unknown.
func (p *Planner) UpdateObstacle(o Obstacle) bool {
	p.mu.Lock()
	_, ok := p.obstacles[o.ID]
	if ok {
		p.obstacles[o.ID] = o
	}
	p.mu.Unlock()
	if ok {
		p.cache.clear()
	}
	return ok
}

// RemoveObstacle drops an obstacle by ID. Returns false when the ID is
// unknown.
func (p *Planner) RemoveObstacle(id string) bool {
	p.mu.Lock()
	_, ok := p.obstacles[id]
	if ok {
		delete(p.obstacles, id)
	}
	p.mu.Unlock()
	if ok {
		p.cache.clear()
	}
	return ok
}

// Obstacles returns a snapshot of the registry.
func (p *Planner) Obstacles() []Obstacle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Obstacle, 0, len(p.obstacles))
	for _, o := range p.obstacles {
		out = append(out, o)
	}
	return out
}
