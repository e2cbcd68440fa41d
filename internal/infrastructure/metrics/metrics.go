package metrics

import (
	"net/http"
	"time"

	"bookstore-graphql/internal/infrastructure/database"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Metrics owns a private Prometheus registry so tests can build as many
// instances as they like.
type Metrics struct {
	ResolverCalls    *prometheus.CounterVec
	ResolverDuration *prometheus.HistogramVec
	HealthStatus     *prometheus.GaugeVec

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		ResolverCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "graphql",
				Name:      "resolver_calls_total",
				Help:      "Resolver invocations by field and result code (OK or an error kind)",
			},
			[]string{"field", "code"},
		),
		ResolverDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "graphql",
				Name:      "resolver_duration_seconds",
				Help:      "Resolver latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"field"},
		),
		HealthStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "health",
				Name:      "status",
				Help:      "Store health (0=unhealthy, 1=healthy)",
			},
			[]string{"store"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ResolverCalls,
		m.ResolverDuration,
		m.HealthStatus,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveResolver records one resolver call. code is "OK" on success.
func (m *Metrics) ObserveResolver(field, code string, elapsed time.Duration) {
	m.ResolverCalls.WithLabelValues(field, code).Inc()
	m.ResolverDuration.WithLabelValues(field).Observe(elapsed.Seconds())
}

func (m *Metrics) SetHealth(store string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	m.HealthStatus.WithLabelValues(store).Set(v)
}

// RegisterPool exports connection pool gauges read from stats at scrape time.
func (m *Metrics) RegisterPool(driver string, stats func() database.PoolStats) {
	labels := prometheus.Labels{"driver": driver}
	gauge := func(name, help string, pick func(database.PoolStats) int64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db_pool",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(pick(stats())) })
	}

	m.registry.MustRegister(
		gauge("total_conns", "Open connections", func(s database.PoolStats) int64 { return s.TotalConns }),
		gauge("idle_conns", "Idle connections", func(s database.PoolStats) int64 { return s.IdleConns }),
		gauge("acquired_conns", "Connections in use", func(s database.PoolStats) int64 { return s.AcquiredConns }),
		gauge("max_conns", "Configured connection limit", func(s database.PoolStats) int64 { return s.MaxConns }),
	)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
