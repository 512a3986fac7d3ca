// Package metrics exposes payment operation metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CircuitState mirrors the circuit breaker states as gauge values.
type CircuitState int

const (
	CircuitClosed   CircuitState = 0
	CircuitHalfOpen CircuitState = 1
	CircuitOpen     CircuitState = 2
)

// Collector records tracked payment operations, bank detail validations and
// circuit breaker state on its own registry.
type Collector struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	validations  *prometheus.CounterVec
	circuitState *prometheus.GaugeVec
}

// NewCollector creates a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_operations_total",
				Help:      "Total number of tracked payment operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "payment_operation_duration_seconds",
				Help:      "Duration of tracked payment operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bank_validations_total",
				Help:      "Total number of bank detail validations by country and result",
			},
			[]string{"country", "valid"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "provider_circuit_state",
				Help:      "Provider circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"provider"},
		),
	}

	c.registry.MustRegister(c.operations, c.latency, c.validations, c.circuitState)
	return c
}

// ObserveOperation implements paymentlog.Recorder.
func (c *Collector) ObserveOperation(operation, outcome string, duration time.Duration) {
	c.operations.WithLabelValues(operation, outcome).Inc()
	c.latency.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// ObserveValidation counts one bank detail validation.
func (c *Collector) ObserveValidation(country string, valid bool) {
	c.validations.WithLabelValues(country, strconv.FormatBool(valid)).Inc()
}

// RecordCircuitState sets the breaker gauge for provider.
func (c *Collector) RecordCircuitState(provider string, state CircuitState) {
	c.circuitState.WithLabelValues(provider).Set(float64(state))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
