// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory reuse primitives for workloads that repeatedly fill and discard
// variable-sized batches of homogeneous records.
//
// RecyclablePool keeps a bounded stack of cleared []T containers.
// ArenaPool carves half-open ranges out of a single growable []T and reuses
// released ranges first-fit from a bounded FreeList.
//
// Nothing in this package is goroutine-safe. Each pool, container and range
// has exactly one owner; Acquire and Release are the only sanctioned ways to
// hand memory from one phase to the next. See package buffer for a
// single-writer/multi-reader handoff.
package pool
