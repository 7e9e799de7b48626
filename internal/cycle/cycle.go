// Package cycle decides on which tick to flush.
// Flush interval grows by one tick per failed send, up to MaxIncreased,
// and returns to base after success.
package cycle

import (
	"sync"
	"sync/atomic"
)

const MaxIncreased = 60

// Controller is owned by one engine. Tick/Failure/Success are called from tick worker,
// RequestAll may come from any goroutine.
type Controller struct {
	changedOnly uint32 // atomic, 1=send changed values only

	mu        sync.Mutex
	base      int
	increased int // 0=unset
	count     int
}

func New(base int) *Controller {
	if base < 1 {
		base = 1
	}
	return &Controller{base: base, changedOnly: 1}
}

func (c *Controller) Base() int { return c.base }

// Interval is effective number of ticks between flushes.
func (c *Controller) Interval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval()
}

func (c *Controller) interval() int {
	if c.increased != 0 {
		return c.increased
	}
	return c.base
}

// Tick counts one cycle, returns true when flush is due and restarts count.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if c.count < c.interval() {
		return false
	}
	c.count = 0
	return true
}

// Failure backs off by one tick. Limit is MaxIncreased unless base is already above it.
func (c *Controller) Failure() {
	limit := MaxIncreased
	if c.base > limit {
		limit = c.base
	}
	c.mu.Lock()
	if next := c.interval() + 1; next <= limit {
		c.increased = next
	} else {
		c.increased = limit
	}
	c.mu.Unlock()
}

func (c *Controller) Success() {
	c.mu.Lock()
	c.increased = 0
	c.mu.Unlock()
}

// RequestAll makes next flush include every known channel once.
func (c *Controller) RequestAll() { atomic.StoreUint32(&c.changedOnly, 0) }

// TakeChangedOnly returns mode for this flush and resets it to changed-only.
func (c *Controller) TakeChangedOnly() bool { return atomic.SwapUint32(&c.changedOnly, 1) == 1 }
