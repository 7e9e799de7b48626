// Package engine samples channel values every cycle, flushes aggregated
// snapshots every N cycles and keeps undelivered snapshots in retry cache.
package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/temoto/alive/v2"
	"github.com/temoto/uplink/internal/cycle"
	"github.com/temoto/uplink/internal/retrycache"
	"github.com/temoto/uplink/internal/sliding"
	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/log2"
	"github.com/temoto/uplink/uplink"
	uplink_config "github.com/temoto/uplink/uplink/config"
)

const logMsgDisabled = "uplink disabled"

// Engine contract:
// - Init fails only with invalid config, network issues ignored
// - one cycle at a time, from ticker worker or Tick()
// - send failures never leave engine, only widen flush interval and fill retry cache
// - Close waits for in-flight cycle, cached messages are lost
type Engine struct { //nolint:maligned
	config    uplink_config.Config
	log       *log2.Log
	sources   source.Lister
	transport Transporter
	registry  prometheus.Registerer
	now       func() time.Time
	noTicker  bool

	enabled   bool
	deviceId  int32
	cycleTime time.Duration
	workers   int
	alive     *alive.Alive
	trigger   chan struct{}

	mu     sync.Mutex // one cycle at a time
	store  *sliding.Store
	cache  *retrycache.Cache
	cycle  *cycle.Controller
	stat   *Stat
	warned sync.Map // uplink.Address -> struct{}
	closed uint32   // atomic
}

var _ uplink.Uplinker = &Engine{} // compile-time interface test

type Option func(*Engine)

// WithTransport replaces MQTT transport, used by tests.
func WithTransport(t Transporter) Option { return func(e *Engine) { e.transport = t } }

// WithRegisterer metrics are registered on r, default is private registry.
func WithRegisterer(r prometheus.Registerer) Option { return func(e *Engine) { e.registry = r } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithoutTicker leaves cycles to explicit Tick() calls.
func WithoutTicker() Option { return func(e *Engine) { e.noTicker = true } }

func New(sources source.Lister, opts ...Option) *Engine {
	e := &Engine{
		sources: sources,
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (self *Engine) Init(ctx context.Context, log *log2.Log, config uplink_config.Config) error {
	self.config = config
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return nil
	}
	if self.sources == nil {
		return errors.NotValidf("code error engine sources=nil")
	}

	fold, err := sliding.ParseFold(config.FoldRule())
	if err != nil {
		return errors.Annotate(err, "uplink config")
	}
	self.deviceId = int32(config.DeviceId)
	self.cycleTime = config.CycleTime()
	self.workers = config.ObserveWorkers
	if self.workers <= 0 {
		self.workers = runtime.NumCPU()
	}
	self.store = sliding.NewStore(fold)
	self.cache = retrycache.New(config.CacheCapacity())
	self.cycle = cycle.New(config.Cycles())
	self.stat = newStat()
	if self.registry == nil {
		self.registry = prometheus.NewRegistry()
	}
	if err := self.stat.register(self.registry); err != nil {
		return errors.Annotate(err, "uplink metrics")
	}
	self.cache.OnDrop(func() {
		self.stat.dropped.Inc()
		self.log.Debugf("retry cache full, oldest message dropped")
	})
	self.stat.interval.Set(float64(self.cycle.Interval()))

	// test code sets .transport
	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	if err := self.transport.Init(ctx, self.log, config, self.onCommandMessage); err != nil {
		self.stat.unregister(self.registry)
		return errors.Annotate(err, "uplink transport")
	}

	self.trigger = make(chan struct{}, 1)
	self.alive = alive.NewAlive()
	self.enabled = true
	if !self.noTicker {
		self.alive.Add(1)
		go self.worker(ctx)
	}
	self.log.Debugf("uplink init device=%d cycle=%v flush_cycles=%d cache=%d fold=%s",
		self.deviceId, self.cycleTime, self.cycle.Base(), self.cache.Cap(), fold.String())
	return nil
}

// SendAllOnce makes next flush carry every known channel and runs it without
// waiting for scheduled tick. Repeated calls before that flush are no-op.
func (self *Engine) SendAllOnce() {
	if !self.enabled {
		self.log.Infof(logMsgDisabled)
		return
	}
	self.cycle.RequestAll()
	select {
	case self.trigger <- struct{}{}:
	default:
	}
}

func (self *Engine) Close() {
	if !self.enabled || !atomic.CompareAndSwapUint32(&self.closed, 0, 1) {
		return
	}
	self.alive.Stop()
	self.alive.Wait()
	self.mu.Lock()
	self.transport.Close()
	self.stat.unregister(self.registry)
	self.mu.Unlock()
}

func (self *Engine) Stat() *Stat { return self.stat }

// Tick runs one cycle at `now`, consuming pending SendAllOnce request.
func (self *Engine) Tick(now time.Time) {
	if !self.enabled {
		return
	}
	force := false
	select {
	case <-self.trigger:
		force = true
	default:
	}
	self.tick(now, force)
}

func (self *Engine) worker(ctx context.Context) {
	defer self.alive.Done()
	ticker := time.NewTicker(self.cycleTime)
	defer ticker.Stop()
	stopch := self.alive.StopChan()
	for {
		select {
		case <-ticker.C:
			self.Tick(self.now())
		case <-self.trigger:
			self.tick(self.now(), true)
		case <-ctx.Done():
			self.alive.Stop()
			return
		case <-stopch:
			return
		}
	}
}

// forced cycle flushes regardless of count and leaves count untouched
func (self *Engine) tick(now time.Time, force bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if atomic.LoadUint32(&self.closed) == 1 {
		return
	}

	self.observe()
	self.stat.channels.Set(float64(self.store.Len()))
	if !force && !self.cycle.Tick() {
		return
	}

	changedOnly := self.cycle.TakeChangedOnly()
	values := self.store.Snapshot(changedOnly)
	self.log.Debugf("uplink flush changed_only=%t values=%d cached=%d", changedOnly, len(values), self.cache.Len())
	if len(values) == 0 || self.flush(now, values) {
		if n := self.cache.Drain(self.transport.SendData); n != 0 {
			self.stat.drained(n)
			self.log.Debugf("uplink retry cache delivered=%d left=%d", n, self.cache.Len())
		}
	}
	self.stat.cacheLen.Set(float64(self.cache.Len()))
	self.stat.interval.Set(float64(self.cycle.Interval()))
}

// flush returns false only when fresh snapshot went to retry cache.
func (self *Engine) flush(now time.Time, values map[uplink.Address]interface{}) bool {
	msg, err := uplink.NewSnapshot(self.truncate(now), self.deviceId, values)
	if err != nil {
		self.log.Error(errors.Annotate(err, "CRITICAL uplink snapshot"))
		return true // retry will not help
	}
	payload, err := proto.Marshal(msg)
	if err != nil {
		self.log.Errorf("CRITICAL uplink snapshot Marshal msg=%s err=%v", msg.String(), err)
		return true
	}

	ok := self.transport.SendData(payload)
	self.stat.flushResult(ok)
	if ok {
		self.cycle.Success()
		return true
	}
	self.cycle.Failure()
	self.cache.Push(payload)
	self.log.Debugf("uplink send failed, cached=%d next interval=%d", self.cache.Len(), self.cycle.Interval())
	return false
}

// truncate to cycle granularity in unix milliseconds
func (self *Engine) truncate(now time.Time) time.Time {
	ms := now.UnixNano() / int64(time.Millisecond)
	step := int64(self.cycleTime / time.Millisecond)
	if step > 0 {
		ms = ms / step * step
	}
	return time.Unix(0, ms*int64(time.Millisecond))
}
