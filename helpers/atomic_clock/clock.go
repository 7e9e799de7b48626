// Package atomic_clock is unix nanoseconds behind atomic int64.
// Zero value means "never". Use for time accounting, not for presentation.
package atomic_clock

import (
	"sync/atomic"
	"time"
)

type Clock struct{ v int64 }

func Source() int64 { return time.Now().UnixNano() }

func New(v int64) *Clock { return &Clock{v: v} }
func Now() *Clock        { return New(Source()) }

func (c *Clock) Load() int64  { return atomic.LoadInt64(&c.v) }
func (c *Clock) IsZero() bool { return c.Load() == 0 }

func (c *Clock) Set(v int64)         { atomic.StoreInt64(&c.v, v) }
func (c *Clock) SetTime(t time.Time) { c.Set(t.UnixNano()) }
func (c *Clock) SetNow()             { c.Set(Source()) }
func (c *Clock) SetNowIfZero()       { atomic.CompareAndSwapInt64(&c.v, 0, Source()) }

// Time returns zero time.Time for zero clock.
func (c *Clock) Time() time.Time {
	v := c.Load()
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v)
}

func (c *Clock) Sub(begin *Clock) time.Duration { return time.Duration(c.Load() - begin.Load()) }

func (c *Clock) Unix() int64      { return c.Load() / int64(time.Second) }
func (c *Clock) UnixMilli() int64 { return c.Load() / int64(time.Millisecond) }
func (c *Clock) UnixNano() int64  { return c.Load() }

func Since(begin *Clock) time.Duration { return time.Duration(Source() - begin.Load()) }
