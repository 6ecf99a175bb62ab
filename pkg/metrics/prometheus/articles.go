// Package prometheus contains the Prometheus implementations of the metrics
// interfaces. Importing it registers the constructors with pkg/metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quillhq/quill/pkg/metrics"
)

func init() {
	metrics.RegisterArticleMetricsConstructor(NewArticleMetrics)
}

// articleMetrics is the Prometheus implementation of metrics.ArticleMetrics.
type articleMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	inFlight          *prometheus.GaugeVec
}

// NewArticleMetrics creates a Prometheus-backed ArticleMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewArticleMetrics() metrics.ArticleMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &articleMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_article_operations_total",
				Help: "Total number of article operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "quill_article_operation_duration_milliseconds",
				Help: "Duration of article operations in milliseconds",
				Buckets: []float64{
					0.5,  // in-memory stores
					1,    // 1ms
					5,    // 5ms
					10,   // 10ms - embedded backends
					50,   // 50ms
					100,  // 100ms - networked backends
					500,  // 500ms
					1000, // 1s
					5000, // 5s - something is wrong
				},
			},
			[]string{"operation"},
		),
		inFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quill_article_operations_in_flight",
				Help: "Number of article operations currently being processed",
			},
			[]string{"operation"},
		),
	}
}

func (m *articleMetrics) RecordOperation(operation string, duration time.Duration, status string) {
	m.operations.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}

func (m *articleMetrics) RecordOperationStart(operation string) {
	m.inFlight.WithLabelValues(operation).Inc()
}

func (m *articleMetrics) RecordOperationEnd(operation string) {
	m.inFlight.WithLabelValues(operation).Dec()
}
