package models

import "errors"

// Common errors for article operations.
var (
	// ErrArticleNotFound is returned when a lookup by ID matches nothing.
	ErrArticleNotFound = errors.New("article not found")

	// ErrValidation is returned when a payload is missing required fields.
	// Callers wrap it with field detail via fmt.Errorf and %w.
	ErrValidation = errors.New("invalid article payload")
)
