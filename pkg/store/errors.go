package store

import "errors"

// Sentinel errors shared by every backend. Backends wrap these with
// backend-specific detail; callers test with errors.Is.
var (
	// ErrConnection indicates the backend could not be reached or dialed.
	ErrConnection = errors.New("store: connection failed")

	// ErrBackend indicates the backend accepted the call but failed it.
	ErrBackend = errors.New("store: backend error")

	// ErrNotFound indicates a lookup by ID matched nothing.
	ErrNotFound = errors.New("store: record not found")

	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store: closed")
)
