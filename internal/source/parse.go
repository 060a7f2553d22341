package source

import (
	"net/url"
	"strings"

	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// ParseRecipes turns raw doc locations into validated Recipe values.
// Entries that are not dish pages, reference anchors, use an unknown
// category, or duplicate an earlier (name, category) pair are skipped.
func ParseRecipes(docs []RawDoc) []types.Recipe {
	recipes := make([]types.Recipe, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		recipe, ok := parseLocation(doc.Location)
		if !ok {
			continue
		}
		key := recipe.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		recipes = append(recipes, recipe)
	}

	return recipes
}

// parseLocation extracts a recipe from a location path of the form
// "dishes/<category>/<url-encoded name>/...".
func parseLocation(location string) (types.Recipe, bool) {
	if location == "" || !strings.Contains(location, "dishes/") || strings.Contains(location, "#") {
		return types.Recipe{}, false
	}

	_, after, _ := strings.Cut(location, "dishes/")
	parts := strings.Split(strings.Trim(after, "/"), "/")
	if len(parts) < 2 {
		return types.Recipe{}, false
	}

	code := parts[0]
	label, ok := types.CategoryLabel(code)
	if !ok {
		return types.Recipe{}, false
	}

	name, err := url.PathUnescape(parts[1])
	if err != nil {
		return types.Recipe{}, false
	}

	recipe := types.Recipe{
		Name:          name,
		Category:      code,
		CategoryLabel: label,
		URL:           location,
	}
	if recipe.Validate() != nil {
		return types.Recipe{}, false
	}
	return recipe, true
}
