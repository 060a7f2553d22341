// Package service composes the data source, index, caches, and formatter
// into the recipe query workflow.
//
// A Service must be initialized before use: Initialize fetches the remote
// dataset, builds the index, and starts the periodic cache sweep. Every
// query fails fast with types.ErrNotInitialized until that first build
// succeeds, so callers can tell "not ready" apart from "no results".
//
// Each query checks its cache first and only consults the index on a
// miss; random recommendations are cached with a deliberately short TTL
// since they are meant to vary. Reload is deduplicated so concurrent
// requests share one fetch, and a failed reload leaves the previous index
// and caches untouched.
package service
