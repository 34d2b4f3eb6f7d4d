// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and stats DTOs.

package api

import "fmt"

// Range is a half-open index interval [Begin, End) into an arena buffer.
type Range struct {
	Begin int
	End   int
}

// Len returns the number of slots covered by r.
func (r Range) Len() int {
	return r.End - r.Begin
}

// Empty reports whether r covers no slots.
func (r Range) Empty() bool {
	return r.End <= r.Begin
}

// Overlaps reports whether r and o share at least one slot.
func (r Range) Overlaps(o Range) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Begin < o.End && o.Begin < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Begin, r.End)
}

// RecyclerStats aggregates container allocation/reuse stats.
type RecyclerStats struct {
	TotalAlloc int64 // containers created because none was retained
	TotalReuse int64 // acquires served from retained containers
	TotalFree  int64 // releases that were retained
	Dropped    int64 // releases discarded because the pool was full
	Available  int
	Limit      int
}

// StatsMap implements StatsSource.
func (s RecyclerStats) StatsMap() map[string]any {
	return map[string]any{
		"total_alloc": s.TotalAlloc,
		"total_reuse": s.TotalReuse,
		"total_free":  s.TotalFree,
		"dropped":     s.Dropped,
		"available":   s.Available,
		"limit":       s.Limit,
	}
}

// ArenaStats aggregates arena buffer and free-list stats.
type ArenaStats struct {
	BufferSize  int // allocated slots
	Len         int // slots handed out
	FreeRanges  int
	FreeSlots   int
	FreeListCap int
	Grown       int64 // slots appended to the buffer
	Reused      int64 // acquires served from the free list
	LeakedSlots int64 // released or split-off slots the free list had no room for
}

// StatsMap implements StatsSource.
func (s ArenaStats) StatsMap() map[string]any {
	return map[string]any{
		"buffer_size":   s.BufferSize,
		"len":           s.Len,
		"free_ranges":   s.FreeRanges,
		"free_slots":    s.FreeSlots,
		"free_list_cap": s.FreeListCap,
		"grown":         s.Grown,
		"reused":        s.Reused,
		"leaked_slots":  s.LeakedSlots,
	}
}
