// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the service's collectors.
type Metrics struct {
	// OrganizationOperations counts service calls by operation and outcome.
	OrganizationOperations *prometheus.CounterVec

	// OrganizationOperationDuration observes service call latency in seconds.
	OrganizationOperationDuration *prometheus.HistogramVec

	// RateLimitHits counts requests rejected by the rate limiter.
	RateLimitHits prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		OrganizationOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "organizations_operations_total",
			Help: "Organization service operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		OrganizationOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "organizations_operation_duration_seconds",
			Help:    "Organization service operation latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RateLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// Register registers every collector on reg (or the default registerer if
// nil). Already-registered collectors are not an error.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	for _, c := range []prometheus.Collector{
		m.OrganizationOperations,
		m.OrganizationOperationDuration,
		m.RateLimitHits,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}

	return nil
}

// ObserveOperation records one organization operation.
// A nil *Metrics is a no-op.
func (m *Metrics) ObserveOperation(operation string, seconds float64, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}

	m.OrganizationOperations.WithLabelValues(operation, outcome).Inc()
	m.OrganizationOperationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordRateLimitHit is a no-op on a nil *Metrics.
func (m *Metrics) RecordRateLimitHit() {
	if m == nil {
		return
	}
	m.RateLimitHits.Inc()
}
