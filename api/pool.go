// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: container recycling and range allocation
// over a shared arena.

package api

// Recycler hands out reusable containers and takes them back.
// Ownership of a container moves with Acquire/Release; it is never shared.
type Recycler[C any] interface {
	// Acquire returns an empty container, reused when one is retained.
	Acquire() C

	// Release clears the container and retains it if capacity allows.
	Release(c C)

	// Available reports how many containers are currently retained.
	Available() int
}

// RangeAllocator serves half-open index ranges out of one growable buffer.
type RangeAllocator interface {
	// Acquire returns a range of exactly size slots.
	Acquire(size int) Range

	// Release returns a range for reuse. Invalid ranges are ignored.
	Release(begin, end int)

	// Available reports how many free ranges are retained for reuse.
	Available() int

	// BufferSize reports the number of slots allocated by the backing buffer.
	BufferSize() int
}

// StatsSource is implemented by every pool-like structure that can be
// sampled by control.MetricsRegistry or control.DebugProbes.
type StatsSource interface {
	StatsMap() map[string]any
}
