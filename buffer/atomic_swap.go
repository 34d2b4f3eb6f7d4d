// File: buffer/atomic_swap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-writer double buffer with an atomically published front.
// Readers pin an epoch while they hold a view; retired fronts wait in a
// FIFO until no pinned reader can still observe them, then go back to the
// pool. Hot fields are padded to separate cache lines.

package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-mem/pool"
)

const idleEpoch = ^uint64(0)

type retiredBuf[T any] struct {
	box   *[]T
	epoch uint64
}

// AtomicSwapBuffer publishes batches from one writer goroutine to any
// number of registered readers. Writer methods (Append, Back, Publish,
// Reclaim) must not be called concurrently with each other.
type AtomicSwapBuffer[T any] struct {
	_     cpu.CacheLinePad
	front atomic.Pointer[[]T]
	epoch atomic.Uint64
	_     cpu.CacheLinePad

	readers atomic.Pointer[[]*Reader[T]]
	mu      sync.Mutex // serializes reader registration
	_       cpu.CacheLinePad

	back    []T
	pool    *pool.RecyclablePool[T]
	retired *queue.Queue
	boxes   []*[]T
}

// NewAtomicSwapBuffer creates a buffer whose pool retains up to retain
// containers.
func NewAtomicSwapBuffer[T any](retain int) *AtomicSwapBuffer[T] {
	p := pool.NewRecyclablePool[T](retain)
	b := &AtomicSwapBuffer[T]{
		pool:    p,
		retired: queue.New(),
	}
	front := p.Acquire()
	b.front.Store(&front)
	b.back = p.Acquire()
	b.readers.Store(&[]*Reader[T]{})
	return b
}

// Append adds values to the back buffer. Writer only.
func (b *AtomicSwapBuffer[T]) Append(vals ...T) {
	b.back = append(b.back, vals...)
}

// Back returns the in-progress container. Writer only.
func (b *AtomicSwapBuffer[T]) Back() *[]T {
	return &b.back
}

// Publish makes the back buffer visible to readers in a single atomic
// store. The back buffer must be fully populated before the call. The old
// front is retired and recycled once no reader can observe it.
func (b *AtomicSwapBuffer[T]) Publish() {
	box := b.box()
	*box = b.back
	old := b.front.Swap(box)
	tag := b.epoch.Add(1) - 1
	b.retired.Add(retiredBuf[T]{box: old, epoch: tag})
	b.back = b.pool.Acquire()
	b.Reclaim()
}

// Reclaim recycles retired fronts that no pinned reader can observe.
// Publish calls it; writers may call it again after readers exit.
func (b *AtomicSwapBuffer[T]) Reclaim() {
	oldest := b.minReaderEpoch()
	for b.retired.Length() > 0 {
		rb := b.retired.Peek().(retiredBuf[T])
		if oldest != idleEpoch && oldest <= rb.epoch {
			// FIFO: everything behind rb is younger and still visible too.
			return
		}
		b.retired.Remove()
		b.pool.Release(*rb.box)
		*rb.box = nil
		b.boxes = append(b.boxes, rb.box)
	}
}

// Retired returns the number of old fronts waiting for readers to exit.
func (b *AtomicSwapBuffer[T]) Retired() int {
	return b.retired.Length()
}

// PoolAvailable returns the number of containers retained by the pool.
func (b *AtomicSwapBuffer[T]) PoolAvailable() int {
	return b.pool.Available()
}

// Epoch returns the number of publishes so far.
func (b *AtomicSwapBuffer[T]) Epoch() uint64 {
	return b.epoch.Load()
}

// Snapshot returns a copy of the current front. Safe from any goroutine.
func (b *AtomicSwapBuffer[T]) Snapshot() []T {
	r := b.NewReader()
	defer r.Close()
	v := r.Enter()
	defer r.Exit()
	return append([]T(nil), v...)
}

// NewReader registers a reader. Each reader is used by one goroutine.
func (b *AtomicSwapBuffer[T]) NewReader() *Reader[T] {
	r := &Reader[T]{owner: b}
	r.epoch.Store(idleEpoch)

	b.mu.Lock()
	defer b.mu.Unlock()
	cur := *b.readers.Load()
	next := make([]*Reader[T], len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, r)
	b.readers.Store(&next)
	return r
}

func (b *AtomicSwapBuffer[T]) removeReader(r *Reader[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := *b.readers.Load()
	next := make([]*Reader[T], 0, len(cur))
	for _, x := range cur {
		if x != r {
			next = append(next, x)
		}
	}
	b.readers.Store(&next)
}

func (b *AtomicSwapBuffer[T]) minReaderEpoch() uint64 {
	oldest := idleEpoch
	for _, r := range *b.readers.Load() {
		if v := r.epoch.Load(); v < oldest {
			oldest = v
		}
	}
	return oldest
}

func (b *AtomicSwapBuffer[T]) box() *[]T {
	if n := len(b.boxes); n > 0 {
		box := b.boxes[n-1]
		b.boxes = b.boxes[:n-1]
		return box
	}
	return new([]T)
}

// Reader pins the published front for the duration of a read section.
type Reader[T any] struct {
	_     cpu.CacheLinePad
	epoch atomic.Uint64
	_     cpu.CacheLinePad
	owner *AtomicSwapBuffer[T]
}

// Enter pins the current epoch and returns the published front. The view
// must not be retained after Exit. Sections do not nest.
func (r *Reader[T]) Enter() []T {
	r.epoch.Store(r.owner.epoch.Load())
	return *r.owner.front.Load()
}

// Exit ends the read section.
func (r *Reader[T]) Exit() {
	r.epoch.Store(idleEpoch)
}

// Close exits and deregisters the reader.
func (r *Reader[T]) Close() {
	r.Exit()
	r.owner.removeReader(r)
}
