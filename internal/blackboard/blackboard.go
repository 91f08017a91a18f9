// Package blackboard provides the shared context used by scripted trees.
//
// A Blackboard is the B of resumebt.Node[B] for everything built by the CLI:
// script leaves, expression conditions, and go-behaviortree adapters all read
// and write the same string-keyed store.
package blackboard

import (
	"maps"
	"slices"
	"sync"

	"github.com/dop251/goja"
)

// Blackboard is a thread-safe key-value store. The zero value is ready to
// use, the backing map is allocated on first write.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns a Blackboard seeded with a copy of initial, which may be nil.
func New(initial map[string]any) *Blackboard {
	var b Blackboard
	if len(initial) != 0 {
		b.data = maps.Clone(initial)
	}
	return &b
}

// Get returns the value stored under key, or nil.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Set stores value under key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = value
}

// Has reports whether key is present, even if its value is nil.
func (b *Blackboard) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.data[key]
	return ok
}

// Delete removes key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Keys returns the keys in sorted order.
func (b *Blackboard) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Sorted(maps.Keys(b.data))
}

// Clear removes every entry.
func (b *Blackboard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.data)
}

// Len returns the number of entries.
func (b *Blackboard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Snapshot returns a shallow copy of the entries, or nil if empty. Mutable
// values (slices, maps, pointers) are shared with the blackboard.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.data) == 0 {
		return nil
	}
	return maps.Clone(b.data)
}

// ExposeToJS returns a JS object bound to this blackboard, with the methods
// get, set, has, delete, keys, clear and len.
func (b *Blackboard) ExposeToJS(vm *goja.Runtime) goja.Value {
	obj := vm.NewObject()
	for name, fn := range map[string]any{
		"get":    b.Get,
		"set":    b.Set,
		"has":    b.Has,
		"delete": b.Delete,
		"keys":   b.Keys,
		"clear":  b.Clear,
		"len":    b.Len,
	} {
		// only fails for non-extensible objects
		_ = obj.Set(name, fn)
	}
	return obj
}
