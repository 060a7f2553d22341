// Package types defines the core data model shared across the service:
// recipe records, search results, category information, and the fixed
// category code/label mapping.
//
// All types are plain immutable values. A Recipe is constructed once when
// the remote payload is parsed and never mutated; reloads replace whole
// collections rather than editing records in place.
package types
