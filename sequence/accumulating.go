// File: sequence/accumulating.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Append-only history with a staged/committed boundary, stored in one
// ArenaPool. Writers append past the committed end; Commit publishes
// everything written since the previous commit.

package sequence

import (
	"iter"

	"github.com/momentics/hioload-mem/pool"
)

// Accumulating keeps every committed value. Not goroutine-safe.
//
// Invariant: currentEnd <= nextEnd <= arena.Len().
type Accumulating[T any] struct {
	arena      *pool.ArenaPool[T]
	currentEnd int
	nextEnd    int
	step       uint64
}

// NewAccumulating creates a sequence with room for initialSize values
// before the arena has to grow.
func NewAccumulating[T any](initialSize int, opts ...pool.ArenaOption) *Accumulating[T] {
	return &Accumulating[T]{
		arena: pool.NewArenaPool[T](initialSize, 0, opts...),
	}
}

// Add stages v after everything written so far. Current is unaffected
// until the next Commit.
func (s *Accumulating[T]) Add(v T) {
	s.arena.Set(s.nextEnd, v)
	s.nextEnd++
}

// AddAll stages vals in order.
func (s *Accumulating[T]) AddAll(vals ...T) {
	for _, v := range vals {
		s.Add(v)
	}
}

// AddSeq stages every value yielded by seq, in order.
func (s *Accumulating[T]) AddSeq(seq iter.Seq[T]) {
	for v := range seq {
		s.Add(v)
	}
}

// Commit publishes all staged values and advances the step, even when
// nothing was staged.
func (s *Accumulating[T]) Commit() {
	s.currentEnd = s.nextEnd
	s.step++
}

// Current returns the whole committed history. The view is invalidated by
// the next Add that grows the arena and by Reset.
func (s *Accumulating[T]) Current() []T {
	return s.arena.Slice(0, s.currentEnd)
}

// Pending returns the values staged since the last Commit.
func (s *Accumulating[T]) Pending() []T {
	return s.arena.Slice(s.currentEnd, s.nextEnd)
}

// Len returns the number of committed values.
func (s *Accumulating[T]) Len() int { return s.currentEnd }

// IsEmpty reports whether nothing has been committed.
func (s *Accumulating[T]) IsEmpty() bool { return s.currentEnd == 0 }

// PendingCount returns the number of staged values.
func (s *Accumulating[T]) PendingCount() int { return s.nextEnd - s.currentEnd }

// Step returns the number of commits since creation or the last Reset.
func (s *Accumulating[T]) Step() uint64 { return s.step }

// BufferSize returns the number of slots allocated by the arena.
func (s *Accumulating[T]) BufferSize() int { return s.arena.BufferSize() }

// Arena exposes the backing arena for stats.
func (s *Accumulating[T]) Arena() *pool.ArenaPool[T] { return s.arena }

// Reset zeroes everything written so far and rewinds all counters. The
// arena keeps its size, so refilling up to the old high-water mark does
// not allocate.
func (s *Accumulating[T]) Reset() {
	s.arena.Clear(0, s.nextEnd)
	s.currentEnd = 0
	s.nextEnd = 0
	s.step = 0
}

// StatsMap implements api.StatsSource.
func (s *Accumulating[T]) StatsMap() map[string]any {
	m := s.arena.StatsMap()
	m["step"] = s.step
	m["committed"] = s.currentEnd
	m["pending"] = s.PendingCount()
	return m
}
