package grid

import (
	"math"
	"sync"
	"time"
)

// cacheKey quantizes a (start, goal) pair by flooring world coordinates.
// Keys are asymmetric: start->goal and goal->start are distinct entries.
type cacheKey struct {
	sx, sz int
	gx, gz int
}

func keyFor(start, goal Point) cacheKey {
	return cacheKey{
		sx: int(math.Floor(start.X)),
		sz: int(math.Floor(start.Z)),
		gx: int(math.Floor(goal.X)),
		gz: int(math.Floor(goal.Z)),
	}
}

type cacheEntry struct {
	path    []Point
	savedAt time.Time
}

// pathCache is a best-effort TTL cache over computed paths. Capacity is
// enforced by evicting the oldest-inserted key, which is only an
// approximate LRU: an expired entry is ignored on lookup but keeps its
// slot until overwritten or evicted.
type pathCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[cacheKey]cacheEntry
	order    []cacheKey // insertion order
	now      func() time.Time
}

func newPathCache(ttl time.Duration, capacity int) *pathCache {
	return &pathCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[cacheKey]cacheEntry, capacity),
		now:      time.Now,
	}
}

// get returns a copy of the cached path, or false on miss or expiry.
func (c *pathCache) get(key cacheKey) ([]Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.savedAt) >= c.ttl {
		return nil, false // stale, a later put overwrites it
	}

	path := make([]Point, len(entry.path))
	copy(path, entry.path)
	return path, true
}

// put stores a path copy, evicting the oldest-inserted entry when full.
func (c *pathCache) put(key cacheKey, path []Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Point, len(path))
	copy(stored, path)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = cacheEntry{path: stored, savedAt: c.now()}
		return
	}

	if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = cacheEntry{path: stored, savedAt: c.now()}
	c.order = append(c.order, key)
}

// clear drops every entry. Called on any obstacle or terrain mutation.
func (c *pathCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry, c.capacity)
	c.order = nil
}

func (c *pathCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
