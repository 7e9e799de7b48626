package source

import (
	"runtime"
	"time"

	"github.com/temoto/uplink/helpers/atomic_clock"
	"github.com/temoto/uplink/helpers/cacheval"
	"github.com/temoto/uplink/uplink"
)

const DefaultRuntimeID = "_runtime"

// memstats reading stops the world, many channels share one reading
const memStatsValid = 500 * time.Millisecond

// Runtime reports health of this process as regular channels.
type Runtime struct {
	id       string
	started  atomic_clock.Clock
	mem      cacheval.Value
	channels []Channel
}

type runtimeChannel struct {
	addr uplink.Address
	kind uplink.Kind
	get  func() interface{}
}

func (c *runtimeChannel) Address() uplink.Address { return c.addr }
func (*runtimeChannel) Access() AccessMode         { return ReadOnly }
func (c *runtimeChannel) Kind() uplink.Kind        { return c.kind }
func (c *runtimeChannel) Value() interface{}       { return c.get() }

func NewRuntime(id string) *Runtime {
	if id == "" {
		id = DefaultRuntimeID
	}
	r := &Runtime{id: id}
	r.started.SetNow()
	r.mem.Init(memStatsValid)
	add := func(name string, kind uplink.Kind, get func() interface{}) {
		r.channels = append(r.channels, &runtimeChannel{
			addr: uplink.Address{Component: id, Channel: name},
			kind: kind,
			get:  get,
		})
	}
	add("Goroutines", uplink.KindInt32, func() interface{} { return int32(runtime.NumGoroutine()) })
	add("UptimeSec", uplink.KindInt64, func() interface{} { return int64(atomic_clock.Since(&r.started) / time.Second) })
	add("HeapAlloc", uplink.KindInt64, func() interface{} { return int64(r.memStats().HeapAlloc) })
	add("HeapObjects", uplink.KindInt64, func() interface{} { return int64(r.memStats().HeapObjects) })
	add("Sys", uplink.KindInt64, func() interface{} { return int64(r.memStats().Sys) })
	add("NumGC", uplink.KindInt64, func() interface{} { return int64(r.memStats().NumGC) })
	add("PauseTotalMs", uplink.KindFloat64, func() interface{} {
		return float64(r.memStats().PauseTotalNs) / float64(time.Millisecond)
	})
	add("GCCPUFraction", uplink.KindFloat64, func() interface{} { return r.memStats().GCCPUFraction })
	return r
}

func (r *Runtime) ID() string          { return r.id }
func (*Runtime) Enabled() bool         { return true }
func (r *Runtime) Channels() []Channel { return r.channels }

func (r *Runtime) memStats() *runtime.MemStats {
	return r.mem.GetOrUpdate(func() interface{} {
		m := new(runtime.MemStats)
		runtime.ReadMemStats(m)
		return m
	}).(*runtime.MemStats)
}
