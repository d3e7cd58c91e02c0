package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInventoryMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInventoryMetrics(reg)

	m.IncOperation("material", "create")
	m.IncOperation("material", "create")
	m.IncOperation("category", "delete")
	m.IncQRFailure()
	m.AddOrphaned(3)
	m.AddOrphaned(0)
	m.ObserveQRProvision(20 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("material", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("category", "delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.qrFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.orphanedByPurge))
	assert.Equal(t, 1, testutil.CollectAndCount(m.qrDuration))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *InventoryMetrics
	assert.NotPanics(t, func() {
		m.IncOperation("material", "delete")
		m.IncQRFailure()
		m.AddOrphaned(2)
		m.ObserveQRProvision(time.Second)
	})

	empty := NewInventoryMetrics(nil)
	assert.NotPanics(t, func() { empty.IncOperation("material", "update") })
}
