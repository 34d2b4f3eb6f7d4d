// File: buffer/swap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Front/back double buffer over a RecyclablePool.

package buffer

import "github.com/momentics/hioload-mem/pool"

// SwapBuffer lets a writer fill back while front holds the last published
// batch. Swap publishes back in one step and recycles the old front.
// Not goroutine-safe; see AtomicSwapBuffer for a cross-goroutine handoff.
type SwapBuffer[T any] struct {
	front []T
	back  []T
	pool  *pool.RecyclablePool[T]
}

// NewSwapBuffer creates a buffer whose internal pool retains up to retain
// containers.
func NewSwapBuffer[T any](retain int) *SwapBuffer[T] {
	p := pool.NewRecyclablePool[T](retain)
	return &SwapBuffer[T]{
		front: p.Acquire(),
		back:  p.Acquire(),
		pool:  p,
	}
}

// Front returns the published contents. The view stays valid until the
// next Swap or Clear.
func (b *SwapBuffer[T]) Front() []T {
	return b.front
}

// Back returns the in-progress container for direct mutation.
func (b *SwapBuffer[T]) Back() *[]T {
	return &b.back
}

// Append adds values to the back buffer.
func (b *SwapBuffer[T]) Append(vals ...T) {
	b.back = append(b.back, vals...)
}

// Swap publishes back as the new front, releases the old front to the
// pool and acquires an empty back.
func (b *SwapBuffer[T]) Swap() {
	old := b.front
	b.front = b.back
	b.pool.Release(old)
	b.back = b.pool.Acquire()
}

// Clear releases both sides and starts over with empty containers.
func (b *SwapBuffer[T]) Clear() {
	b.pool.Release(b.front)
	b.pool.Release(b.back)
	b.front = b.pool.Acquire()
	b.back = b.pool.Acquire()
}

// PoolAvailable returns the number of containers retained by the pool.
func (b *SwapBuffer[T]) PoolAvailable() int {
	return b.pool.Available()
}

// Pool exposes the internal pool, mainly for stats and limit updates.
func (b *SwapBuffer[T]) Pool() *pool.RecyclablePool[T] {
	return b.pool
}
