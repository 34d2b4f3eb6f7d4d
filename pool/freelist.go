// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded, insertion-ordered list of free arena ranges.

package pool

import (
	"slices"

	"github.com/momentics/hioload-mem/api"
)

// FreeList keeps up to cap disjoint ranges in insertion order.
// Disjointness is assumed; the list never re-validates it.
type FreeList struct {
	ranges []api.Range
	cap    int
}

// NewFreeList creates an empty free list bounded by capacity.
// A negative capacity is treated as zero.
func NewFreeList(capacity int) *FreeList {
	capacity = max(capacity, 0)
	return &FreeList{
		ranges: make([]api.Range, 0, capacity),
		cap:    capacity,
	}
}

// Push appends r if the list has room. Returns false when r was dropped.
func (fl *FreeList) Push(r api.Range) bool {
	if len(fl.ranges) >= fl.cap {
		return false
	}
	fl.ranges = append(fl.ranges, r)
	return true
}

// TakeFirstFit removes and returns the first range of at least size slots.
// Order of the remaining ranges is preserved.
func (fl *FreeList) TakeFirstFit(size int) (api.Range, bool) {
	i := slices.IndexFunc(fl.ranges, func(r api.Range) bool {
		return r.Len() >= size
	})
	if i < 0 {
		return api.Range{}, false
	}
	r := fl.ranges[i]
	fl.ranges = slices.Delete(fl.ranges, i, i+1)
	return r, true
}

// Len returns the number of retained ranges.
func (fl *FreeList) Len() int { return len(fl.ranges) }

// Cap returns the configured bound.
func (fl *FreeList) Cap() int { return fl.cap }

// Full reports whether another Push would be dropped.
func (fl *FreeList) Full() bool { return len(fl.ranges) >= fl.cap }

// Slots returns the total number of slots held by retained ranges.
func (fl *FreeList) Slots() int {
	n := 0
	for _, r := range fl.ranges {
		n += r.Len()
	}
	return n
}

// Ranges returns a copy of the retained ranges in list order.
func (fl *FreeList) Ranges() []api.Range {
	return slices.Clone(fl.ranges)
}

// Reset drops every retained range.
func (fl *FreeList) Reset() {
	fl.ranges = fl.ranges[:0]
}
