package engine

import (
	"sync"
	"sync/atomic"

	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/uplink"
)

func (self *Engine) readable() []source.Channel {
	var result []source.Channel
	for _, s := range self.sources.EnabledSources() {
		for _, ch := range s.Channels() {
			if ch.Access().Readable() {
				result = append(result, ch)
			}
		}
	}
	return result
}

// observe samples every readable channel using up to self.workers goroutines.
func (self *Engine) observe() {
	chs := self.readable()
	n := self.workers
	if n > len(chs) {
		n = len(chs)
	}
	if n <= 1 {
		for _, ch := range chs {
			self.observeOne(ch)
		}
		return
	}

	var wg sync.WaitGroup
	next := int64(-1)
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= len(chs) {
					return
				}
				self.observeOne(chs[i])
			}
		}()
	}
	wg.Wait()
}

func (self *Engine) observeOne(ch source.Channel) {
	addr := ch.Address()
	kind := ch.Kind()
	if !kind.Valid() {
		self.warnOnce(addr, "uplink channel=%s kind=%s unknown, not sampled", addr.String(), kind)
		return
	}
	if o, ok := ch.(source.Optioner); ok && kind != uplink.KindEnum && o.HasOptions() {
		self.warnOnce(addr, "uplink channel=%s kind=%s has enum options, must be declared kind=enum, not sampled", addr.String(), kind)
		return
	}
	x := ch.Value()
	if x == nil {
		return
	}
	if err := self.store.Observe(addr, kind, x); err != nil {
		self.warnOnce(addr, "uplink observe err=%v", err)
	}
}

func (self *Engine) warnOnce(addr uplink.Address, format string, args ...interface{}) {
	if _, loaded := self.warned.LoadOrStore(addr, struct{}{}); !loaded {
		self.log.Warningf(format, args...)
	}
}
