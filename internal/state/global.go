package state

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/temoto/alive/v2"
	"github.com/temoto/uplink/internal/engine"
	"github.com/temoto/uplink/internal/opcua"
	"github.com/temoto/uplink/internal/source"
	"github.com/temoto/uplink/log2"
	"github.com/temoto/uplink/uplink"
)

type Global struct {
	Alive        *alive.Alive
	Bridges      []*opcua.Bridge
	BuildVersion string
	Config       *Config
	Log          *log2.Log
	Registerer   prometheus.Registerer
	Sources      *source.Registry
	Uplink       uplink.Uplinker

	// only used when Uplink is nil
	XXX_engineOptions []engine.Option

	_copy_guard sync.Mutex //nolint:unused
}

const ContextKey = "run/state-global"

func NewGlobal(log *log2.Log, opts ...engine.Option) *Global {
	return &Global{
		Alive:             alive.NewAlive(),
		BuildVersion:      "unknown",
		Log:               log,
		XXX_engineOptions: opts,
	}
}

func NewContext(log *log2.Log, opts ...engine.Option) (context.Context, *Global) {
	g := NewGlobal(log, opts...)
	ctx := context.WithValue(context.Background(), ContextKey, g)
	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	g.Log.Infof("build version=%s", g.BuildVersion)
	if level, ok := log2.ParseLevel(cfg.LogLevel); ok {
		g.Log.SetLevel(level)
	} else {
		return errors.NotValidf("config: log_level=%s", cfg.LogLevel)
	}

	sources, err := BuildSources(g.Log, cfg)
	if err != nil {
		return errors.Annotate(err, "sources init")
	}
	g.Sources = sources
	g.Log.Debugf("config: sources=%d", g.Sources.Len())
	if g.Bridges, err = BuildBridges(g.Log, cfg, g.Sources); err != nil {
		return errors.Annotate(err, "opcua init")
	}

	if g.Uplink == nil {
		opts := g.XXX_engineOptions
		if g.Registerer != nil {
			opts = append(opts, engine.WithRegisterer(g.Registerer))
		}
		g.Uplink = engine.New(g.Sources, opts...)
	}
	// uplink log level is independent, may be raised by uplink.log_debug
	if err := g.Uplink.Init(ctx, g.Log.Clone(log2.LInfo), cfg.Uplink); err != nil {
		g.Uplink = uplink.Noop{}
		return errors.Annotate(err, "uplink init")
	}
	for _, b := range g.Bridges {
		if err := b.Start(ctx); err != nil {
			return errors.Annotate(err, "opcua start")
		}
		g.Log.Debugf("opcua endpoint=%s started", b.Endpoint())
	}
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Fatal(err)
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Error(err)
	}
}

func (g *Global) Fatal(err error, args ...interface{}) {
	if err != nil {
		g.Error(err, args...)
		g.StopWait(5 * time.Second)
		g.Log.Fatal(errors.ErrorStack(err))
		os.Exit(1)
	}
}

// Point finds config defined channel for code to set its value.
func (g *Global) Point(addr uplink.Address) (*source.Point, error) {
	return point(g.Sources, addr)
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

// StopWait closes uplink, undelivered messages are lost.
func (g *Global) StopWait(timeout time.Duration) bool {
	g.Alive.Stop()
	done := make(chan struct{})
	go func() {
		for _, b := range g.Bridges {
			b.Stop()
		}
		if g.Uplink != nil {
			g.Uplink.Close()
		}
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
