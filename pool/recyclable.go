// File: pool/recyclable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded stack of reusable slices. Releases beyond the limit are dropped
// and left to the GC.

package pool

import "github.com/momentics/hioload-mem/api"

// RecyclablePool recycles []T containers across fill/discard cycles.
// Not goroutine-safe; one owner at a time.
type RecyclablePool[T any] struct {
	free  [][]T
	limit int

	totalAlloc int64
	totalReuse int64
	totalFree  int64
	dropped    int64
}

// NewRecyclablePool creates a pool retaining at most limit containers.
// A limit of zero (or less) disables retention entirely.
func NewRecyclablePool[T any](limit int) *RecyclablePool[T] {
	limit = max(limit, 0)
	return &RecyclablePool[T]{
		free:  make([][]T, 0, min(limit, 64)),
		limit: limit,
	}
}

// Acquire returns the most recently released container, or a new empty one.
func (p *RecyclablePool[T]) Acquire() []T {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.totalReuse++
		return s
	}
	p.totalAlloc++
	return []T{}
}

// Release clears s and keeps it for reuse if the pool is below its limit.
// Capacity is retained; element references are dropped so the GC can
// collect anything they pointed to.
func (p *RecyclablePool[T]) Release(s []T) {
	clear(s)
	s = s[:0]
	if len(p.free) >= p.limit {
		p.dropped++
		return
	}
	p.free = append(p.free, s)
	p.totalFree++
}

// Available returns the number of retained containers.
func (p *RecyclablePool[T]) Available() int {
	return len(p.free)
}

// Limit returns the retention limit.
func (p *RecyclablePool[T]) Limit() int {
	return p.limit
}

// SetLimit changes the retention limit. Containers above a lowered limit
// are dropped immediately.
func (p *RecyclablePool[T]) SetLimit(limit int) {
	limit = max(limit, 0)
	p.limit = limit
	if len(p.free) > limit {
		excess := len(p.free) - limit
		clear(p.free[limit:])
		p.free = p.free[:limit]
		p.dropped += int64(excess)
	}
}

// Stats returns allocation and reuse counters.
func (p *RecyclablePool[T]) Stats() api.RecyclerStats {
	return api.RecyclerStats{
		TotalAlloc: p.totalAlloc,
		TotalReuse: p.totalReuse,
		TotalFree:  p.totalFree,
		Dropped:    p.dropped,
		Available:  len(p.free),
		Limit:      p.limit,
	}
}

// StatsMap implements api.StatsSource.
func (p *RecyclablePool[T]) StatsMap() map[string]any {
	return p.Stats().StatsMap()
}

var (
	_ api.Recycler[[]int] = (*RecyclablePool[int])(nil)
	_ api.StatsSource     = (*RecyclablePool[int])(nil)
)
