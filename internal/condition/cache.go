package condition

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the capacity of the shared program cache, unless
// changed via SetCacheSize.
const DefaultCacheSize = 1000

var shared = NewCache(DefaultCacheSize)

// SetCacheSize resizes the shared program cache, evicting as necessary.
// Sizes below one are treated as one.
func SetCacheSize(size int) {
	shared.Resize(size)
}

// SharedCache returns the cache used by New.
func SharedCache() *Cache {
	return shared
}

// Cache is a bounded, thread-safe, LRU cache of compiled programs, keyed by
// expression source.
type Cache struct {
	mu     sync.Mutex
	index  map[string]*list.Element
	order  *list.List // front is most recently used
	size   int
	hits   int64
	misses int64
}

type cached struct {
	source  string
	program *vm.Program
}

// NewCache returns an empty cache holding at most size programs. Sizes
// below one fall back to DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	return &Cache{
		index: make(map[string]*list.Element),
		order: list.New(),
		size:  size,
	}
}

// Get returns the program compiled from source, marking it recently used.
func (c *Cache) Get(source string) (*vm.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.index[source]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(elem)
	return elem.Value.(*cached).program, true
}

// Put stores program under source, replacing any existing entry.
func (c *Cache) Put(source string, program *vm.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.index[source]; ok {
		elem.Value.(*cached).program = program
		c.order.MoveToFront(elem)
		return
	}
	c.index[source] = c.order.PushFront(&cached{source: source, program: program})
	c.evict()
}

// Resize changes the capacity. Sizes below one are treated as one.
func (c *Cache) Resize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = max(size, 1)
	c.evict()
}

func (c *Cache) evict() {
	for c.order.Len() > c.size {
		elem := c.order.Back()
		delete(c.index, elem.Value.(*cached).source)
		c.order.Remove(elem)
	}
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cap returns the capacity.
func (c *Cache) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) String() string {
	hits, misses := c.Stats()
	return fmt.Sprintf("condition.Cache{len=%d, cap=%d, hits=%d, misses=%d}", c.Len(), c.Cap(), hits, misses)
}
