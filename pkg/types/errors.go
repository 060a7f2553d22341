package types

import "errors"

// Domain errors for type validation and service state
var (
	// Recipe validation errors
	ErrEmptyName          = errors.New("recipe name cannot be empty")
	ErrEmptyCategory      = errors.New("recipe category cannot be empty")
	ErrEmptyCategoryLabel = errors.New("recipe category label cannot be empty")
	ErrEmptyURL           = errors.New("recipe url cannot be empty")
	ErrUnknownCategory    = errors.New("unknown recipe category")

	// Search result errors
	ErrNegativeTotal  = errors.New("total count cannot be negative")
	ErrResultOverflow = errors.New("shown recipes cannot exceed total count")

	// Category info errors
	ErrNegativeCount = errors.New("category count cannot be negative")

	// ErrNotInitialized is returned by any query issued before the first
	// successful index build. Distinct from an empty result so callers can
	// tell "not ready" from "ready and found nothing".
	ErrNotInitialized = errors.New("recipe service not initialized")
)
