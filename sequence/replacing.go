// File: sequence/replacing.go
// Author: momentics <momentics@gmail.com>
//
// Per-step snapshot sequence over a SwapBuffer: each Commit replaces the
// visible batch instead of extending it.

package sequence

import "github.com/momentics/hioload-mem/buffer"

// Replacing exposes only the most recently committed batch.
// Not goroutine-safe.
type Replacing[T any] struct {
	buf  *buffer.SwapBuffer[T]
	step uint64
}

// NewReplacing creates a sequence whose pool retains up to retain
// containers.
func NewReplacing[T any](retain int) *Replacing[T] {
	return &Replacing[T]{buf: buffer.NewSwapBuffer[T](retain)}
}

// Add stages v for the next Commit.
func (s *Replacing[T]) Add(v T) {
	s.buf.Append(v)
}

// AddAll stages vals in order.
func (s *Replacing[T]) AddAll(vals ...T) {
	s.buf.Append(vals...)
}

// Commit swaps the staged batch in and advances the step.
func (s *Replacing[T]) Commit() {
	s.buf.Swap()
	s.step++
}

// Current returns the last committed batch.
func (s *Replacing[T]) Current() []T { return s.buf.Front() }

// Len returns the size of the last committed batch.
func (s *Replacing[T]) Len() int { return len(s.buf.Front()) }

// IsEmpty reports whether the last committed batch is empty.
func (s *Replacing[T]) IsEmpty() bool { return s.Len() == 0 }

// PendingCount returns the number of staged values.
func (s *Replacing[T]) PendingCount() int { return len(*s.buf.Back()) }

// Step returns the number of commits since creation or the last Clear.
func (s *Replacing[T]) Step() uint64 { return s.step }

// PoolAvailable returns the number of containers retained for reuse.
func (s *Replacing[T]) PoolAvailable() int { return s.buf.PoolAvailable() }

// Buffer exposes the underlying swap buffer.
func (s *Replacing[T]) Buffer() *buffer.SwapBuffer[T] { return s.buf }

// Clear drops both the visible and the staged batch and rewinds the step.
func (s *Replacing[T]) Clear() {
	s.buf.Clear()
	s.step = 0
}

// StatsMap implements api.StatsSource.
func (s *Replacing[T]) StatsMap() map[string]any {
	m := s.buf.Pool().StatsMap()
	m["step"] = s.step
	m["committed"] = s.Len()
	m["pending"] = s.PendingCount()
	return m
}
