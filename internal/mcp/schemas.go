package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchRecipesTool returns the tool definition for search_recipes
func searchRecipesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_recipes",
		Description: "Search recipes by keyword; returns the best matches most relevant first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"keyword": map[string]interface{}{
					"type":        "string",
					"description": "Dish name or fragment to search for (e.g. '鸡蛋')",
				},
			},
			Required: []string{"keyword"},
		},
	}
}

// randomRecipeTool returns the tool definition for random_recipe
func randomRecipeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "random_recipe",
		Description: "Recommend one random recipe, optionally limited to a category",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category label to pick from (e.g. '主食'); omit for any category",
				},
			},
		},
	}
}

// randomRecipesTool returns the tool definition for random_recipes
func randomRecipesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "random_recipes",
		Description: "Recommend several random recipes across all categories",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of recipes to recommend (1-10)",
					"default":     3,
					"minimum":     1,
					"maximum":     10,
				},
			},
		},
	}
}

// getRecipeTool returns the tool definition for get_recipe
func getRecipeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_recipe",
		Description: "Look up a dish by exact name and return its how-to-cook link",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Exact dish name (e.g. '手工水饺')",
				},
			},
			Required: []string{"name"},
		},
	}
}

// suggestRecipesTool returns the tool definition for suggest_recipes
func suggestRecipesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "suggest_recipes",
		Description: "Suggest dish name completions for a partial keyword",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"partial": map[string]interface{}{
					"type":        "string",
					"description": "Beginning of a dish name",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of suggestions (1-20)",
					"default":     5,
					"minimum":     1,
					"maximum":     20,
				},
			},
			Required: []string{"partial"},
		},
	}
}

// listCategoryRecipesTool returns the tool definition for list_category_recipes
func listCategoryRecipesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_category_recipes",
		Description: "List the dishes of one category",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category label (e.g. '主食')",
				},
			},
			Required: []string{"category"},
		},
	}
}

// listCategoriesTool returns the tool definition for list_categories
func listCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_categories",
		Description: "List all recipe categories with their recipe counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getStatsTool returns the tool definition for get_stats
func getStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_stats",
		Description: "Report service statistics: request counters, index sizes, cache hit rates",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// reloadRecipesTool returns the tool definition for reload_recipes
func reloadRecipesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reload_recipes",
		Description: "Refetch the recipe dataset and rebuild the search index",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
