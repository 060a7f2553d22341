package source

import (
	"context"
	"errors"
)

// Failure classes for data source operations
var (
	ErrNetwork    = errors.New("network request failed")
	ErrParse      = errors.New("response parsing failed")
	ErrValidation = errors.New("response validation failed")
)

// RawDoc is one entry of the remote search index document.
type RawDoc struct {
	Location string `json:"location"`
}

// DataSource yields the raw recipe documents. Implementations own their
// retry policy; callers never retry on top of it.
type DataSource interface {
	// FetchRecipes retrieves the raw doc list. Errors wrap ErrNetwork,
	// ErrParse, or ErrValidation.
	FetchRecipes(ctx context.Context) ([]RawDoc, error)

	// HealthCheck reports whether the source currently looks reachable.
	HealthCheck(ctx context.Context) bool

	// SourceInfo describes the source for diagnostics.
	SourceInfo() map[string]any
}
