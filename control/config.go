// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with typed pool limits and reload
// propagation to running pools.

package control

import (
	"sync"
)

// Configuration keys understood by Limits.
const (
	KeyInitialSize = "arena.initial_size"
	KeyFreeListCap = "arena.free_list_cap"
	KeyMaxLen      = "arena.max_len"
	KeyRetain      = "pool.retain"
)

// Limits are the construction parameters shared by pools and sequences.
type Limits struct {
	InitialSize int // preallocated arena slots
	FreeListCap int // retained free ranges per arena
	MaxLen      int // arena length cap, 0 for unbounded
	Retain      int // retained containers per recyclable pool
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		InitialSize: 1024,
		FreeListCap: 64,
		MaxLen:      0,
		Retain:      8,
	}
}

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and runs reload listeners on the calling
// goroutine once the store is unlocked.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// Limits reads the typed limits, falling back to DefaultLimits for
// missing or malformed keys.
func (cs *ConfigStore) Limits() Limits {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	l := DefaultLimits()
	l.InitialSize = cs.intValue(KeyInitialSize, l.InitialSize)
	l.FreeListCap = cs.intValue(KeyFreeListCap, l.FreeListCap)
	l.MaxLen = cs.intValue(KeyMaxLen, l.MaxLen)
	l.Retain = cs.intValue(KeyRetain, l.Retain)
	return l
}

// SetLimits stores l and notifies listeners.
func (cs *ConfigStore) SetLimits(l Limits) {
	cs.SetConfig(map[string]any{
		KeyInitialSize: l.InitialSize,
		KeyFreeListCap: l.FreeListCap,
		KeyMaxLen:      l.MaxLen,
		KeyRetain:      l.Retain,
	})
}

// BindRecycler applies the configured Retain limit to r now and on every
// reload. Pools are single-owner, so SetConfig must then only be called
// from the goroutine that owns r.
func (cs *ConfigStore) BindRecycler(r interface{ SetLimit(int) }) {
	r.SetLimit(cs.Limits().Retain)
	cs.OnReload(func() {
		r.SetLimit(cs.Limits().Retain)
	})
}

func (cs *ConfigStore) intValue(key string, def int) int {
	switch v := cs.config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
