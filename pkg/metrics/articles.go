package metrics

import (
	"time"
)

// ArticleMetrics provides observability for article operations.
//
// This interface is optional - pass nil to disable metrics collection with
// zero overhead.
type ArticleMetrics interface {
	// RecordOperation records a completed article operation.
	//
	// Parameters:
	//   - operation: "create", "list", "get", or "delete"
	//   - duration: Time taken to process the operation
	//   - status: "ok", "not_found", "validation_error", or "error"
	RecordOperation(operation string, duration time.Duration, status string)

	// RecordOperationStart increments the in-flight operation gauge.
	RecordOperationStart(operation string)

	// RecordOperationEnd decrements the in-flight operation gauge.
	RecordOperationEnd(operation string)
}

// NewArticleMetrics creates a Prometheus-backed ArticleMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewArticleMetrics() ArticleMetrics {
	if !IsEnabled() || newPrometheusArticleMetrics == nil {
		return nil
	}
	return newPrometheusArticleMetrics()
}

// newPrometheusArticleMetrics is implemented in pkg/metrics/prometheus.
// The indirection avoids an import cycle while keeping the API in one place.
var newPrometheusArticleMetrics func() ArticleMetrics

// RegisterArticleMetricsConstructor registers the Prometheus article metrics
// constructor. Called by pkg/metrics/prometheus during package initialization.
func RegisterArticleMetricsConstructor(constructor func() ArticleMetrics) {
	newPrometheusArticleMetrics = constructor
}
