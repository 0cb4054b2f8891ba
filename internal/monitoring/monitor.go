// Package monitoring exposes Prometheus metrics for model calls, collection
// writes and inventory size.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
	OutcomeDegraded = "degraded"
)

// Monitor collects metrics on a private registry. A nil *Monitor is valid
// and records nothing.
type Monitor struct {
	registry       *prometheus.Registry
	aiRequests     *prometheus.CounterVec
	aiDuration     *prometheus.HistogramVec
	storeWrites    *prometheus.CounterVec
	inventoryItems prometheus.Gauge
	startTime      time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		aiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fridjy_ai_requests_total",
				Help: "Model calls by capability and outcome",
			},
			[]string{"capability", "outcome"},
		),
		aiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fridjy_ai_request_duration_seconds",
				Help:    "Time spent waiting on the model",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"capability"},
		),
		storeWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fridjy_store_writes_total",
				Help: "Collection writes by collection and outcome",
			},
			[]string{"collection", "outcome"},
		),
		inventoryItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fridjy_inventory_items",
			Help: "Items currently tracked in the inventory",
		}),
		startTime: time.Now(),
	}
	m.registry.MustRegister(m.aiRequests, m.aiDuration, m.storeWrites, m.inventoryItems)
	return m
}

// ObserveAIRequest records one model call.
func (m *Monitor) ObserveAIRequest(capability, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(capability, outcome).Inc()
	m.aiDuration.WithLabelValues(capability).Observe(took.Seconds())
}

// RecordStoreWrite counts a collection write; err decides the outcome.
func (m *Monitor) RecordStoreWrite(collection string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	m.storeWrites.WithLabelValues(collection, outcome).Inc()
}

// SetInventorySize updates the inventory gauge.
func (m *Monitor) SetInventorySize(n int) {
	if m == nil {
		return
	}
	m.inventoryItems.Set(float64(n))
}

// Uptime returns the time since the monitor was created.
func (m *Monitor) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

// Registry returns the registry the collectors live on.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
