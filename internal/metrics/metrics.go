// Package metrics exposes prometheus instrumentation for the upstream
// adapters, the polling engine, and the favorites store.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec // endpoint label
	UpstreamErrors   *prometheus.CounterVec // endpoint label
	UpstreamDuration prometheus.Histogram

	PollTicks    prometheus.Counter
	PollFailures prometheus.Counter

	FavoriteWrites *prometheus.CounterVec // op label: add|remove
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busango_upstream_requests_total",
			Help: "Total requests issued against the open data services.",
		}, []string{"endpoint"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busango_upstream_errors_total",
			Help: "Total failed open data requests, transport and result-code failures alike.",
		}, []string{"endpoint"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busango_upstream_request_duration_seconds",
			Help:    "Duration of open data requests.",
			Buckets: prometheus.DefBuckets,
		}),
		PollTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busango_poll_ticks_total",
			Help: "Total refresh cycles started by pollers.",
		}),
		PollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busango_poll_failures_total",
			Help: "Total refresh cycles that completed with an error.",
		}),
		FavoriteWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busango_favorite_writes_total",
			Help: "Total favorite mutations.",
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.UpstreamRequests,
		c.UpstreamErrors,
		c.UpstreamDuration,
		c.PollTicks,
		c.PollFailures,
		c.FavoriteWrites,
	)

	return c
}

// Handler returns the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream call. All collector methods are safe
// on a nil receiver so instrumentation stays optional.
func (c *Collector) ObserveUpstream(endpoint string, seconds float64, failed bool) {
	if c == nil {
		return
	}
	c.UpstreamRequests.WithLabelValues(endpoint).Inc()
	c.UpstreamDuration.Observe(seconds)
	if failed {
		c.UpstreamErrors.WithLabelValues(endpoint).Inc()
	}
}

// ObservePollTick records one started refresh cycle.
func (c *Collector) ObservePollTick() {
	if c == nil {
		return
	}
	c.PollTicks.Inc()
}

// ObservePollFailure records one refresh cycle that completed with an error.
func (c *Collector) ObservePollFailure() {
	if c == nil {
		return
	}
	c.PollFailures.Inc()
}

// ObserveFavoriteWrite records one favorites mutation.
func (c *Collector) ObserveFavoriteWrite(op string) {
	if c == nil {
		return
	}
	c.FavoriteWrites.WithLabelValues(op).Inc()
}
