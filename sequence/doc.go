// Package sequence
// Author: momentics <momentics@gmail.com>
//
// Staged/committed sequences built on the pool and buffer packages.
//
// Accumulating keeps every committed value in one arena: Current grows with
// each Commit and never shrinks until Reset. Replacing keeps only the last
// committed batch: each Commit swaps the staged batch in and recycles the
// previous one. Both count commits in Step, including empty ones.
package sequence

import "github.com/momentics/hioload-mem/api"

// Sequence is the behaviour shared by Accumulating and Replacing.
type Sequence[T any] interface {
	api.StatsSource

	Add(v T)
	AddAll(vals ...T)
	Commit()
	Current() []T
	Len() int
	IsEmpty() bool
	PendingCount() int
	Step() uint64
}

var (
	_ Sequence[int] = (*Accumulating[int])(nil)
	_ Sequence[int] = (*Replacing[int])(nil)
)
