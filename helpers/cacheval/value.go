// Package cacheval is atomic value with validity timeout.
// "updated" timestamp is stored after value, without consistency.
// Usage scenario: expensive readings like runtime.ReadMemStats shared by many channels.
// All methods except `Init` are thread-safe.
package cacheval

import (
	"sync/atomic"
	"time"

	"github.com/temoto/uplink/helpers/atomic_clock"
)

type Value struct {
	v       atomic.Value
	updated atomic_clock.Clock
	valid   time.Duration
}

// Not thread-safe. `valid` duration cannot be changed later.
func (c *Value) Init(valid time.Duration) { c.valid = valid }

func (c *Value) get(now int64) (interface{}, bool) {
	v := c.v.Load()
	if v == nil {
		return nil, false
	}
	age := time.Duration(now - c.updated.Load())
	return v, age >= 0 && age <= c.valid
}

// Get returns current, possibly stale value. Nil before first Set.
func (c *Value) Get() interface{} { return c.v.Load() }

// GetFresh returns current value and true if it's fresh.
func (c *Value) GetFresh() (interface{}, bool) { return c.get(atomic_clock.Source()) }

// GetOrUpdate returns fresh value, calling `f()` to produce new one if stale.
// No cache stampede guard, concurrent callers may run `f()` each.
// `f()` must return same concrete type every time.
func (c *Value) GetOrUpdate(f func() interface{}) interface{} {
	if v, ok := c.get(atomic_clock.Source()); ok {
		return v
	}
	v := f()
	c.Set(v)
	return v
}

func (c *Value) Set(new interface{}) {
	c.v.Store(new)
	c.updated.SetNow()
}
