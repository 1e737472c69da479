// Package telemetry exposes Prometheus primitives for the invoicing core.
// There is no network listener; the registry is read through its Gatherer,
// which is enough for local inspection and tests.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type Metrics struct {
	registry *prometheus.Registry

	entityOps      *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	fixtureRecords *prometheus.CounterVec
}

// NewMetrics registers and returns the application metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	entityOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturo_entity_ops_total",
		Help: "Counts CRUD operations by entity, operation, and status.",
	}, []string{"entity", "op", "status"})

	searchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "facturo_search_duration_seconds",
		Help:    "Search latency per entity.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})

	fixtureRecords := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturo_fixture_records_total",
		Help: "Counts fixture records imported by kind and status.",
	}, []string{"kind", "status"})

	registry.MustRegister(entityOps, searchDuration, fixtureRecords)

	return &Metrics{
		registry:       registry,
		entityOps:      entityOps,
		searchDuration: searchDuration,
		fixtureRecords: fixtureRecords,
	}
}

// Gatherer exposes the underlying registry for scraping or tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// RecordOp counts one CRUD operation. err decides the status label.
func (m *Metrics) RecordOp(entity, op string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.entityOps.WithLabelValues(entity, op, status).Inc()
}

// ObserveSearch records one search call's duration.
func (m *Metrics) ObserveSearch(entity string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
}

// RecordFixtureRecord counts one fixture record import attempt.
func (m *Metrics) RecordFixtureRecord(kind string, err error) {
	if m == nil {
		return
	}
	status := "created"
	if err != nil {
		status = "failed"
	}
	m.fixtureRecords.WithLabelValues(kind, status).Inc()
}

var Module = fx.Module("telemetry",
	fx.Provide(NewMetrics),
)
