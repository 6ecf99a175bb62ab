package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for article and storage operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Client attributes
	// ========================================================================
	AttrClientIP = "client.ip"

	// ========================================================================
	// Article attributes
	// ========================================================================
	AttrOperation = "article.operation" // create, list, get, delete
	AttrArticleID = "article.id"        // Article UUID
	AttrAuthor    = "article.author"    // Author filter or value
	AttrTag       = "article.tag"       // Tag filter value
	AttrCount     = "article.count"     // Number of articles in a result

	// ========================================================================
	// Storage attributes
	// ========================================================================
	AttrStoreCell  = "store.cell"       // Registry slot name
	AttrCollection = "store.collection" // Collection name
)

// ClientIP returns an attribute for the client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// Operation returns an attribute for the article operation name
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// ArticleID returns an attribute for an article UUID
func ArticleID(id string) attribute.KeyValue {
	return attribute.String(AttrArticleID, id)
}

// Author returns an attribute for an article author
func Author(a string) attribute.KeyValue {
	return attribute.String(AttrAuthor, a)
}

// Tag returns an attribute for a tag filter value
func Tag(t string) attribute.KeyValue {
	return attribute.String(AttrTag, t)
}

// Count returns an attribute for a result count
func Count(n int) attribute.KeyValue {
	return attribute.Int(AttrCount, n)
}

// StoreCell returns an attribute for the registry slot name
func StoreCell(name string) attribute.KeyValue {
	return attribute.String(AttrStoreCell, name)
}

// Collection returns an attribute for a collection name
func Collection(name string) attribute.KeyValue {
	return attribute.String(AttrCollection, name)
}

// StartArticleSpan starts a span for an article operation.
// The span name follows the "article.<operation>" convention.
func StartArticleSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		Operation(operation),
	}, attrs...)

	return StartSpan(ctx, "article."+operation,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(spanAttrs...),
	)
}

// StartStoreSpan starts a span for a storage backend operation.
// The span name follows the "store.<operation>" convention.
func StartStoreSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "store."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}
