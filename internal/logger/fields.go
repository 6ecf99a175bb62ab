package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so logs aggregate
// and query cleanly.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// HTTP Request
	// ========================================================================
	KeyRequestID = "request_id" // Per-request identifier from the router
	KeyMethod    = "method"     // HTTP method
	KeyPath      = "path"       // Request path
	KeyStatus    = "status"     // HTTP status code
	KeyClientIP  = "client_ip"  // Client IP address

	// ========================================================================
	// Articles
	// ========================================================================
	KeyArticleID  = "article_id" // Article UUID
	KeyAuthor     = "author"     // Article author
	KeyTag        = "tag"        // Tag filter value
	KeyCount      = "count"      // Number of articles in a result
	KeyCollection = "collection" // Storage collection name

	// ========================================================================
	// Storage
	// ========================================================================
	KeyCell    = "cell"    // Registry slot name
	KeyBackend = "backend" // Backend type: memory, badger, mongo, sqlite, postgres
	KeyTarget  = "target"  // Connection target (scheme only; never credentials)

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyPort       = "port"        // Listening port
	KeySignal     = "signal"      // OS signal that triggered shutdown
)

// Err returns a slog.Attr for an error, tolerating nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
