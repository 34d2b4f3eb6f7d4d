// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ArenaPool serves variable-sized ranges out of one growable []T.
// Released ranges are cleared eagerly and kept on a bounded free list;
// acquires take the first free range that fits and fall back to growth.

package pool

import (
	"fmt"

	"github.com/momentics/hioload-mem/api"
)

// DefaultFreeListCap is used by callers that have no better bound.
const DefaultFreeListCap = 64

// ArenaOption configures an ArenaPool.
type ArenaOption func(*arenaConfig)

type arenaConfig struct {
	maxLen int
}

// WithMaxLen caps the used length. Growth past it is reported as
// api.ErrResourceExhausted. Zero means unbounded.
func WithMaxLen(n int) ArenaOption {
	return func(c *arenaConfig) {
		c.maxLen = max(n, 0)
	}
}

// ArenaPool is a flat arena allocator with first-fit free range reuse.
// Not goroutine-safe; ranges are owned by whoever acquired them and the
// pool does not track loans.
type ArenaPool[T any] struct {
	buf    []T
	free   *FreeList
	maxLen int

	grown  int64
	reused int64
	leaked int64
}

// NewArenaPool creates an arena with room for initialSize slots and a free
// list bounded by freeListCap. Preallocated slots are handed out in order
// before the backing array has to be reallocated.
func NewArenaPool[T any](initialSize, freeListCap int, opts ...ArenaOption) *ArenaPool[T] {
	var cfg arenaConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ArenaPool[T]{
		buf:    make([]T, 0, max(initialSize, 0)),
		free:   NewFreeList(freeListCap),
		maxLen: cfg.maxLen,
	}
}

// Acquire returns a range of exactly size slots. It panics with an
// api.ErrResourceExhausted error if the buffer may not grow any further.
func (a *ArenaPool[T]) Acquire(size int) api.Range {
	r, err := a.TryAcquire(size)
	if err != nil {
		panic(err)
	}
	return r
}

// TryAcquire is Acquire with growth failure reported as an error.
// When no free range fits, the used length grows by exactly size and the
// new suffix is returned. A size of zero or less yields the empty range at
// the end of the used length.
func (a *ArenaPool[T]) TryAcquire(size int) (api.Range, error) {
	if size <= 0 {
		return api.Range{Begin: len(a.buf), End: len(a.buf)}, nil
	}
	if r, ok := a.free.TakeFirstFit(size); ok {
		a.reused++
		if r.Len() > size {
			rest := api.Range{Begin: r.Begin + size, End: r.End}
			if !a.free.Push(rest) {
				a.leaked += int64(rest.Len())
			}
		}
		return api.Range{Begin: r.Begin, End: r.Begin + size}, nil
	}
	begin := len(a.buf)
	if err := a.grow(begin + size); err != nil {
		return api.Range{}, err
	}
	return api.Range{Begin: begin, End: begin + size}, nil
}

// Release clears [begin,end) and offers it to the free list. Invalid
// ranges are ignored so callers may release conservatively.
func (a *ArenaPool[T]) Release(begin, end int) {
	if !a.valid(begin, end) {
		return
	}
	clear(a.buf[begin:end])
	if !a.free.Push(api.Range{Begin: begin, End: end}) {
		a.leaked += int64(end - begin)
	}
}

// ReleaseRange is Release for an api.Range.
func (a *ArenaPool[T]) ReleaseRange(r api.Range) {
	a.Release(r.Begin, r.End)
}

// Clear zeroes [begin,end) without offering it to the free list.
// Invalid ranges are ignored.
func (a *ArenaPool[T]) Clear(begin, end int) {
	if !a.valid(begin, end) {
		return
	}
	clear(a.buf[begin:end])
}

// Get returns the value at i, or false when i is out of range.
func (a *ArenaPool[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(a.buf) {
		var zero T
		return zero, false
	}
	return a.buf[i], true
}

// Ref returns a pointer to slot i, or nil when i is out of range.
// The pointer is invalidated by any later growth.
func (a *ArenaPool[T]) Ref(i int) *T {
	if i < 0 || i >= len(a.buf) {
		return nil
	}
	return &a.buf[i]
}

// Set writes v at i, growing the buffer with zero values when i is past
// the end. It panics if the growth is refused or i is negative.
func (a *ArenaPool[T]) Set(i int, v T) {
	if err := a.TrySet(i, v); err != nil {
		panic(err)
	}
}

// TrySet is Set with growth failure reported as an error.
func (a *ArenaPool[T]) TrySet(i int, v T) error {
	if i < 0 {
		panic(fmt.Sprintf("pool: negative arena index %d", i))
	}
	if i >= len(a.buf) {
		if err := a.grow(i + 1); err != nil {
			return err
		}
	}
	a.buf[i] = v
	return nil
}

// Slice returns the backing buffer view for [begin,end). The caller must
// own the range. The view is invalidated by any later growth.
func (a *ArenaPool[T]) Slice(begin, end int) []T {
	return a.buf[begin:end:end]
}

// Available returns the number of ranges on the free list.
func (a *ArenaPool[T]) Available() int {
	return a.free.Len()
}

// BufferSize returns the number of allocated slots. It never shrinks.
func (a *ArenaPool[T]) BufferSize() int {
	return cap(a.buf)
}

// Len returns the number of slots handed out so far, the bound used by
// Get, Release and Slice.
func (a *ArenaPool[T]) Len() int {
	return len(a.buf)
}

// FreeRanges returns a copy of the free list in reuse order.
func (a *ArenaPool[T]) FreeRanges() []api.Range {
	return a.free.Ranges()
}

// Stats returns buffer and free-list counters.
func (a *ArenaPool[T]) Stats() api.ArenaStats {
	return api.ArenaStats{
		BufferSize:  cap(a.buf),
		Len:         len(a.buf),
		FreeRanges:  a.free.Len(),
		FreeSlots:   a.free.Slots(),
		FreeListCap: a.free.Cap(),
		Grown:       a.grown,
		Reused:      a.reused,
		LeakedSlots: a.leaked,
	}
}

// StatsMap implements api.StatsSource.
func (a *ArenaPool[T]) StatsMap() map[string]any {
	return a.Stats().StatsMap()
}

func (a *ArenaPool[T]) valid(begin, end int) bool {
	return begin >= 0 && begin < end && end <= len(a.buf)
}

// grow extends the used length to n slots. New slots are always zero.
func (a *ArenaPool[T]) grow(n int) error {
	if a.maxLen > 0 && n > a.maxLen {
		return api.NewError(api.ErrCodeResourceExhausted, "arena growth refused").
			WithContext("requested", n).
			WithContext("max_len", a.maxLen)
	}
	old := len(a.buf)
	if n <= cap(a.buf) {
		a.buf = a.buf[:n]
		clear(a.buf[old:])
	} else {
		a.buf = append(a.buf, make([]T, n-old)...)
	}
	a.grown += int64(n - old)
	return nil
}

var (
	_ api.RangeAllocator = (*ArenaPool[int])(nil)
	_ api.StatsSource    = (*ArenaPool[int])(nil)
)
