package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
// Tracks creations per entity kind, failures per error code, and operation
// durations on the creation path.
type Metrics struct {
	TypesCreated      *prometheus.CounterVec
	CreationFailures  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with all registry module metrics registered.
func New() *Metrics {
	return &Metrics{
		TypesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tracechain_types_created_total",
			Help: "Total number of type definitions committed, by entity kind",
		}, []string{"kind"}),
		CreationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tracechain_type_creation_failures_total",
			Help: "Total number of rejected creation requests, by entity kind and error code",
		}, []string{"kind", "code"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracechain_type_creation_duration_seconds",
			Help:    "Duration of creation operations, validation through commit",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
	}
}

// RecordCreated records a successful creation for the kind.
func (m *Metrics) RecordCreated(kind string) {
	m.TypesCreated.WithLabelValues(kind).Inc()
}

// RecordFailure records a rejected creation for the kind and error code.
func (m *Metrics) RecordFailure(kind, code string) {
	m.CreationFailures.WithLabelValues(kind, code).Inc()
}

// ObserveDuration records how long an operation took.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveDuration(kind string, start time.Time) {
	m.OperationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
