// Package retrycache holds encoded payloads that failed to send,
// oldest first, bounded by capacity. Nothing survives restart.
package retrycache

import (
	"sync"
	"sync/atomic"
)

const DefaultCapacity = 1000

// Cache is evicting FIFO on fixed ring buffer.
// Overflow removes oldest entry and is counted, not reported as error.
type Cache struct {
	dropped uint64 // atomic

	mu     sync.Mutex
	ring   [][]byte
	head   int // index of oldest
	length int
	onDrop func()
}

// New capacity<1 means DefaultCapacity.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Cache{ring: make([][]byte, capacity)}
}

// OnDrop f is called on every eviction, outside of lock.
// Not thread-safe, set before use.
func (c *Cache) OnDrop(f func()) { c.onDrop = f }

func (c *Cache) Cap() int { return len(c.ring) }

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.length
}

func (c *Cache) Dropped() uint64 { return atomic.LoadUint64(&c.dropped) }

// Push appends payload, evicting oldest if full.
func (c *Cache) Push(payload []byte) (evicted bool) {
	c.mu.Lock()
	capacity := len(c.ring)
	if c.length == capacity {
		c.ring[c.head] = nil
		c.head = (c.head + 1) % capacity
		c.length--
		evicted = true
	}
	c.ring[(c.head+c.length)%capacity] = payload
	c.length++
	c.mu.Unlock()

	if evicted {
		atomic.AddUint64(&c.dropped, 1)
		if c.onDrop != nil {
			c.onDrop()
		}
	}
	return evicted
}

// Drain sends entries oldest first, removing each on success.
// Stops at first failure, failed entry stays at head.
// Lock is not held while send runs, so Push may interleave; new entries go to tail.
// Returns number of removed entries.
func (c *Cache) Drain(send func([]byte) bool) int {
	n := 0
	for {
		payload, ok := c.peek()
		if !ok || !send(payload) {
			return n
		}
		c.removeHead(payload)
		n++
	}
}

// Items returns copy of entries, oldest first.
func (c *Cache) Items() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([][]byte, c.length)
	for i := range result {
		result[i] = c.ring[(c.head+i)%len(c.ring)]
	}
	return result
}

func (c *Cache) peek() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.length == 0 {
		return nil, false
	}
	return c.ring[c.head], true
}

// removeHead only if head is still payload, concurrent Push overflow may have evicted it.
func (c *Cache) removeHead(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.length == 0 || !samePayload(c.ring[c.head], payload) {
		return
	}
	c.ring[c.head] = nil
	c.head = (c.head + 1) % len(c.ring)
	c.length--
}

func samePayload(a, b []byte) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
