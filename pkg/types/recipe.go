package types

import "strings"

// Recipe represents a single dish entry from the recipe site.
type Recipe struct {
	Name          string // Dish name, URL-decoded
	Category      string // Stable category code (e.g. "staple")
	CategoryLabel string // Display label (e.g. "主食")
	URL           string // Location path relative to the site root
}

// Validate checks that all fields are present and the category is known.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(r.CategoryLabel) == "" {
		return ErrEmptyCategoryLabel
	}
	if strings.TrimSpace(r.URL) == "" {
		return ErrEmptyURL
	}
	if !KnownCategory(r.Category) {
		return ErrUnknownCategory
	}
	return nil
}

// Key returns the identity used for deduplication: (name, category label).
func (r Recipe) Key() string {
	return r.Name + "_" + r.CategoryLabel
}

// FullURL joins the recipe's relative URL onto the site base URL.
// URLs that already carry the site prefix pass through unchanged.
func (r Recipe) FullURL(siteURL string) string {
	if strings.HasPrefix(r.URL, siteURL) {
		return r.URL
	}
	return strings.TrimSuffix(siteURL, "/") + "/" + strings.TrimPrefix(r.URL, "/")
}

// SearchResult holds the outcome of one keyword search, in relevance order.
type SearchResult struct {
	Recipes    []Recipe // Matches shown to the caller, most relevant first
	TotalCount int      // Matches before truncation
	HasMore    bool     // True iff TotalCount > len(Recipes)
	Query      string   // The original search string
}

// Validate checks internal consistency of the result.
func (sr SearchResult) Validate() error {
	if sr.TotalCount < 0 {
		return ErrNegativeTotal
	}
	if len(sr.Recipes) > sr.TotalCount {
		return ErrResultOverflow
	}
	return nil
}

// IsEmpty reports whether the search produced no matches.
func (sr SearchResult) IsEmpty() bool {
	return len(sr.Recipes) == 0
}

// ShownCount returns the number of matches shown to the caller.
func (sr SearchResult) ShownCount() int {
	return len(sr.Recipes)
}

// CategoryInfo describes one category and the number of recipes in it.
type CategoryInfo struct {
	Label string
	Code  string
	Count int
}

// Validate checks the category info fields.
func (ci CategoryInfo) Validate() error {
	if strings.TrimSpace(ci.Label) == "" {
		return ErrEmptyCategoryLabel
	}
	if strings.TrimSpace(ci.Code) == "" {
		return ErrEmptyCategory
	}
	if ci.Count < 0 {
		return ErrNegativeCount
	}
	return nil
}
