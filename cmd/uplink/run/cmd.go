// Service mode: sample sources, deliver snapshots, serve metrics.
package run

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/temoto/uplink/cmd/uplink/subcmd"
	"github.com/temoto/uplink/internal/state"
)

const stopTimeout = 10 * time.Second

var Mod = subcmd.Mod{Name: "run", Usage: "run uplink service (default)", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.Registerer = prometheus.DefaultRegisterer
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.MustInit(ctx, config)

	var srv *http.Server
	if listen := config.Uplink.MetricsListen; listen != "" {
		ln, err := net.Listen("tcp", listen)
		if err != nil {
			return errors.Annotate(err, "metrics listen")
		}
		srv = &http.Server{Handler: NewRouter(prometheus.DefaultGatherer, g.Uplink.SendAllOnce)}
		go func() {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				g.Error(err, "metrics serve")
			}
		}()
		g.Log.Infof("metrics listen=%s", ln.Addr().String())
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Infof("uplink running version=%s", g.BuildVersion)

	stopCh := g.Alive.StopChan()
loop:
	for {
		select {
		case sig := <-sigs:
			if sig == syscall.SIGUSR1 {
				g.Log.Infof("signal=%s send all channels", sig)
				g.Uplink.SendAllOnce()
				continue
			}
			g.Log.Infof("signal=%s stopping", sig)
			break loop
		case <-stopCh:
			break loop
		}
	}

	subcmd.SdNotify(daemon.SdNotifyStopping)
	if srv != nil {
		sctx, scancel := context.WithTimeout(context.Background(), stopTimeout)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			g.Error(err, "metrics shutdown")
		}
	}
	if !g.StopWait(stopTimeout) {
		return errors.Timeoutf("uplink close after %v", stopTimeout)
	}
	return nil
}

// NewRouter serves metrics and operator trigger of full snapshot.
func NewRouter(gatherer prometheus.Gatherer, sendAll func()) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Post("/send-all", func(w http.ResponseWriter, _ *http.Request) {
		sendAll()
		w.WriteHeader(http.StatusAccepted)
	})
	return r
}
