// Package index implements the in-memory recipe index and search engine.
//
// An Index is built from the full recipe set in one pass and answers four
// query shapes: exact name lookup, keyword search with relevance ranking,
// bounded random sampling, and category listing.
//
// # Structures
//
// Building produces an immutable snapshot holding:
//
//   - a name index mapping each dish name (and its lowercase form) to its
//     record, for O(1) exact lookup
//   - a category index mapping each category label to its records
//   - a keyword index mapping every single character plus every contiguous
//     2- and 3-rune substring of each lowercased dish name to the set of
//     names containing it (this is what makes short CJK queries work)
//   - pre-shuffled random pools per category, plus one ""-keyed pool
//     spanning all categories, used as sampling sources
//
// # Relevance
//
// Keyword matches sort by an ascending score: 0 for an exact name match,
// 1 for a prefix match, 2+position for a substring match (earlier is
// better), 1000 otherwise. Ties break by name so results are stable.
//
// # Concurrency
//
// The snapshot is replaced atomically under a write lock; queries read the
// current snapshot pointer and then traverse it lock-free, so an in-flight
// query always sees one fully consistent dataset generation. At most one
// rebuild runs at a time; a second concurrent UpdateRecords fails fast
// with ErrBuildInProgress.
package index
