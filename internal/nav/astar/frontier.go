package astar

import "container/heap"

// Frontier is a binary min-heap of elements keyed by a scalar priority.
// Lower priorities dequeue first. There is no decrease-key operation:
// callers re-enqueue an element with its improved priority and tolerate
// the stale duplicate left behind.
type Frontier[T any] struct {
	h frontierHeap[T]
}

// NewFrontier creates an empty frontier.
func NewFrontier[T any]() *Frontier[T] {
	return &Frontier[T]{}
}

// Enqueue inserts value with the given priority.
func (f *Frontier[T]) Enqueue(value T, priority float64) {
	heap.Push(&f.h, frontierItem[T]{value: value, priority: priority})
}

// Dequeue removes and returns the lowest-priority element.
// The second return is false when the frontier is empty.
func (f *Frontier[T]) Dequeue() (T, bool) {
	if f.h.Len() == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&f.h).(frontierItem[T])
	return item.value, true
}

// Len returns the number of queued elements, stale duplicates included.
func (f *Frontier[T]) Len() int { return f.h.Len() }

// IsEmpty reports whether the frontier holds no elements.
func (f *Frontier[T]) IsEmpty() bool { return f.h.Len() == 0 }

type frontierItem[T any] struct {
	value    T
	priority float64
}

// frontierHeap implements container/heap (min-heap by priority).
type frontierHeap[T any] []frontierItem[T]

func (h frontierHeap[T]) Len() int           { return len(h) }
func (h frontierHeap[T]) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h frontierHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap[T]) Push(x any)        { *h = append(*h, x.(frontierItem[T])) }

func (h *frontierHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = frontierItem[T]{} // GC
	*h = old[:n-1]
	return item
}
