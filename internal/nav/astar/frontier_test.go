package astar

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierOrdering(t *testing.T) {
	f := NewFrontier[string]()
	f.Enqueue("mid", 5)
	f.Enqueue("low", 1)
	f.Enqueue("high", 9)

	assert.Equal(t, 3, f.Len())

	v, ok := f.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "low", v)

	v, _ = f.Dequeue()
	assert.Equal(t, "mid", v)
	v, _ = f.Dequeue()
	assert.Equal(t, "high", v)

	_, ok = f.Dequeue()
	assert.False(t, ok, "empty frontier should report no element")
	assert.True(t, f.IsEmpty())
}

func TestFrontierDuplicates(t *testing.T) {
	f := NewFrontier[int]()
	f.Enqueue(7, 10)
	f.Enqueue(7, 2) // re-insertion with improved priority

	v, ok := f.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, f.Len(), "stale duplicate stays queued")
}

func TestFrontierRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := NewFrontier[float64]()

	priorities := make([]float64, 0, 200)
	for n := 0; n < 200; n++ {
		p := rng.Float64() * 1000
		priorities = append(priorities, p)
		f.Enqueue(p, p)
	}
	sort.Float64s(priorities)

	for i, want := range priorities {
		got, ok := f.Dequeue()
		require.True(t, ok, "dequeue %d", i)
		assert.Equal(t, want, got)
	}
	assert.True(t, f.IsEmpty())
}
