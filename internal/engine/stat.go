package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/temoto/uplink/helpers/atomic_clock"
)

const metricNamespace = "uplink"

type Stat struct {
	LastSuccess atomic_clock.Clock
	LastFailure atomic_clock.Clock

	flush    *prometheus.CounterVec
	dropped  prometheus.Counter
	cacheLen prometheus.Gauge
	interval prometheus.Gauge
	channels prometheus.Gauge
}

func newStat() *Stat {
	return &Stat{
		flush: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "flush_total",
			Help:      "Snapshot sends by result, drained counts cached messages delivered later.",
		}, []string{"result"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "cache_dropped_total",
			Help:      "Undelivered messages evicted from full retry cache.",
		}),
		cacheLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "cache_length",
			Help:      "Messages waiting in retry cache.",
		}),
		interval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "interval_cycles",
			Help:      "Effective number of cycles between flushes.",
		}),
		channels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "channels",
			Help:      "Channels known to aggregation store.",
		}),
	}
}

func (s *Stat) collectors() []prometheus.Collector {
	return []prometheus.Collector{s.flush, s.dropped, s.cacheLen, s.interval, s.channels}
}

func (s *Stat) register(r prometheus.Registerer) error {
	for _, c := range s.collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stat) unregister(r prometheus.Registerer) {
	for _, c := range s.collectors() {
		r.Unregister(c)
	}
}

func (s *Stat) flushResult(ok bool) {
	if ok {
		s.LastSuccess.SetNow()
		s.flush.WithLabelValues("success").Inc()
	} else {
		s.LastFailure.SetNow()
		s.flush.WithLabelValues("failure").Inc()
	}
}

// drained messages from retry cache are delivered data too
func (s *Stat) drained(n int) {
	s.LastSuccess.SetNow()
	s.flush.WithLabelValues("drained").Add(float64(n))
}
