package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOpCountsByStatus(t *testing.T) {
	m := NewMetrics()

	m.RecordOp("customer", "create", nil)
	m.RecordOp("customer", "create", nil)
	m.RecordOp("customer", "create", errors.New("boom"))
	m.ObserveSearch("customer", 10*time.Millisecond)
	m.RecordFixtureRecord("product", nil)

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
		if f.GetName() == "facturo_entity_ops_total" {
			var ok, failed float64
			for _, metric := range f.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "status" && label.GetValue() == "ok" {
						ok = metric.GetCounter().GetValue()
					}
					if label.GetName() == "status" && label.GetValue() == "error" {
						failed = metric.GetCounter().GetValue()
					}
				}
			}
			assert.Equal(t, float64(2), ok)
			assert.Equal(t, float64(1), failed)
		}
	}
	assert.True(t, byName["facturo_entity_ops_total"])
	assert.True(t, byName["facturo_search_duration_seconds"])
	assert.True(t, byName["facturo_fixture_records_total"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.RecordOp("customer", "create", nil)
	m.ObserveSearch("customer", time.Millisecond)
	m.RecordFixtureRecord("invoice", errors.New("boom"))

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}
