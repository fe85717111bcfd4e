// Package metrics exposes tracking counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tracking"

// Collector records authentication, session and delivery events.
type Collector struct {
	logins           *prometheus.CounterVec
	authFailures     *prometheus.CounterVec
	sessionsReplaced prometheus.Counter
	sessionsSwept    prometheus.Counter
	confirmations    *prometheus.CounterVec
	violations       *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected tokens and credentials by internal reason.",
		}, []string{"reason"}),
		sessionsReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_superseded_total",
			Help:      "Sessions deactivated by a newer login of the same courier.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Expired sessions deactivated by the sweep job.",
		}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_confirmed_total",
			Help:      "Proofs of delivery recorded by outcome.",
		}, []string{"outcome"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parcel_state_violations_total",
			Help:      "Rejected parcel operations by violation.",
		}, []string{"violation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.logins,
		c.authFailures,
		c.sessionsReplaced,
		c.sessionsSwept,
		c.confirmations,
		c.violations,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordSessionsSuperseded(n int64) {
	if n > 0 {
		c.sessionsReplaced.Add(float64(n))
	}
}

func (c *Collector) RecordSessionsSwept(n int64) {
	if n > 0 {
		c.sessionsSwept.Add(float64(n))
	}
}

func (c *Collector) RecordDeliveryConfirmed(outcome string) {
	c.confirmations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordStateViolation(violation string) {
	c.violations.WithLabelValues(violation).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every event.
type Nop struct{}

func (Nop) RecordLogin(string)                                   {}
func (Nop) RecordAuthFailure(string)                             {}
func (Nop) RecordSessionsSuperseded(int64)                       {}
func (Nop) RecordSessionsSwept(int64)                            {}
func (Nop) RecordDeliveryConfirmed(string)                       {}
func (Nop) RecordStateViolation(string)                          {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
