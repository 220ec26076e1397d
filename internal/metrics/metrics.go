// AngelaMos | 2026
// metrics.go

package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const namespace = "project_records"

// Metrics owns a private registry so that several instances can coexist
// in one process (tests build one per case).
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	HTTPInFlight   prometheus.Gauge
	RateLimited    prometheus.Counter
	DomainOps      *prometheus.CounterVec
	DomainDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
		DomainOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_operations_total",
			Help:      "Domain service operations by entity, operation and outcome",
		}, []string{"entity", "operation", "outcome"}),
		DomainDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "domain_operation_duration_seconds",
			Help:      "Duration of domain service operations",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"entity", "operation"}),
	}
}

// RegisterDB exposes sql.DBStats for the pool under the given name.
func (m *Metrics) RegisterDB(name string, db *sql.DB) error {
	if err := m.Registry.Register(collectors.NewDBStatsCollector(db, name)); err != nil {
		return err
	}
	return nil
}

// RegisterRedis exposes the client's connection pool counters.
func (m *Metrics) RegisterRedis(stats func() *redis.PoolStats) error {
	return m.Registry.Register(newRedisPoolCollector(stats))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		Registry: m.Registry,
	})
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveOperation records one domain call. Call with time.Now() taken at
// the start of the operation.
func (m *Metrics) ObserveOperation(entity, operation string, start time.Time, err error) {
	m.DomainOps.WithLabelValues(entity, operation, Outcome(err)).Inc()
	m.DomainDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

// Outcome classifies an operation result by its error kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case core.IsValidation(err):
		return "invalid"
	case core.IsAlreadyExists(err):
		return "conflict"
	case core.IsNotFound(err):
		return "not_found"
	case core.IsAuthorization(err):
		return "forbidden"
	default:
		return "error"
	}
}

type redisPoolCollector struct {
	stats func() *redis.PoolStats

	hits       *prometheus.Desc
	misses     *prometheus.Desc
	timeouts   *prometheus.Desc
	totalConns *prometheus.Desc
	idleConns  *prometheus.Desc
	staleConns *prometheus.Desc
}

func newRedisPoolCollector(stats func() *redis.PoolStats) *redisPoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "redis_pool", name), help, nil, nil)
	}

	return &redisPoolCollector{
		stats:      stats,
		hits:       desc("hits_total", "Free connections found in the pool"),
		misses:     desc("misses_total", "Free connections not found in the pool"),
		timeouts:   desc("timeouts_total", "Waits for a connection that timed out"),
		totalConns: desc("connections", "Connections currently in the pool"),
		idleConns:  desc("idle_connections", "Idle connections in the pool"),
		staleConns: desc("stale_connections_total", "Stale connections removed from the pool"),
	}
}

func (c *redisPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.timeouts
	ch <- c.totalConns
	ch <- c.idleConns
	ch <- c.staleConns
}

func (c *redisPoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	if s == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.timeouts, prometheus.CounterValue, float64(s.Timeouts))
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(s.TotalConns))
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(s.IdleConns))
	ch <- prometheus.MustNewConstMetric(c.staleConns, prometheus.CounterValue, float64(s.StaleConns))
}
