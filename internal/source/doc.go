// Package source fetches and parses the raw recipe dataset.
//
// The remote recipe site publishes a search index document of the form
//
//	{"docs": [{"location": "dishes/staple/%E6%89%8B%E5%B7%A5%E6%B0%B4%E9%A5%BA/", ...}, ...]}
//
// RemoteSource retrieves that document with retry and exponential backoff,
// and ParseRecipes turns the doc locations into validated, deduplicated
// Recipe values. Network failures are retried; parse and validation
// failures are not.
//
// Errors wrap one of three sentinels so callers can branch on the failure
// class:
//
//	ErrNetwork    - request or transport failure
//	ErrParse      - response body is not valid JSON
//	ErrValidation - response JSON has the wrong shape
package source
