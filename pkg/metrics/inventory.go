package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

// InventoryMetrics records inventory lifecycle events. A nil *InventoryMetrics
// is valid and records nothing.
type InventoryMetrics struct {
	operations      *prometheus.CounterVec
	qrDuration      prometheus.Histogram
	qrFailures      prometheus.Counter
	orphanedByPurge prometheus.Counter
}

// NewInventoryMetrics registers the inventory metrics on reg.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Inventory write operations by entity and action.",
	}, []string{"entity", "action"})
	qrDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "qr",
		Name:      "provision_duration_seconds",
		Help:      "Time spent rendering and storing a QR image.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})
	qrFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "qr",
		Name:      "provision_failures_total",
		Help:      "QR provisioning attempts that failed after the material was stored.",
	})
	orphaned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_materials_total",
		Help:      "Materials uncategorized because their category was deleted.",
	})
	reg.MustRegister(operations, qrDuration, qrFailures, orphaned)
	return &InventoryMetrics{
		operations:      operations,
		qrDuration:      qrDuration,
		qrFailures:      qrFailures,
		orphanedByPurge: orphaned,
	}
}

// IncOperation counts one write, e.g. ("material", "create").
func (m *InventoryMetrics) IncOperation(entity, action string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(entity, action).Inc()
}

func (m *InventoryMetrics) ObserveQRProvision(d time.Duration) {
	if m == nil || m.qrDuration == nil {
		return
	}
	m.qrDuration.Observe(d.Seconds())
}

func (m *InventoryMetrics) IncQRFailure() {
	if m == nil || m.qrFailures == nil {
		return
	}
	m.qrFailures.Inc()
}

func (m *InventoryMetrics) AddOrphaned(n int) {
	if m == nil || m.orphanedByPurge == nil || n <= 0 {
		return
	}
	m.orphanedByPurge.Add(float64(n))
}
