// Package mcp implements the Model Context Protocol (MCP) server for the
// cookbook service.
//
// The server exposes the recipe tools to AI assistants:
//   - search_recipes: keyword search over the recipe catalog
//   - random_recipe: one random recommendation, optionally category-scoped
//   - random_recipes: a batch of random recommendations
//   - get_recipe: exact dish lookup returning the how-to-cook link
//   - suggest_recipes: name completions for a partial keyword
//   - list_categories: all categories with recipe counts
//   - list_category_recipes: the dishes of one category
//   - get_stats: service, index, and cache statistics
//   - reload_recipes: refetch the dataset and rebuild the index
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server reads protocol messages from stdin and writes responses to
// stdout. All logging goes to stderr so the protocol stream stays clean.
//
// # Basic Usage
//
//	cookbook-mcp
//
// The binary loads configuration from the environment (see the config
// package), fetches the recipe dataset at startup, and then serves tool
// calls until stdin closes or the process receives SIGINT/SIGTERM.
//
// # Tool: search_recipes
//
//	Request:
//	{
//	  "name": "search_recipes",
//	  "arguments": {"keyword": "鸡蛋"}
//	}
//
// The response is formatted text listing the best-matching dishes, most
// relevant first, with a hint when more matches were truncated.
//
// # Tool: random_recipe
//
//	Request:
//	{
//	  "name": "random_recipe",
//	  "arguments": {"category": "主食"}
//	}
//
// Omitting category picks from the whole catalog. An unknown category
// returns the list of valid ones.
//
// # Error Handling
//
// Parameter problems are reported as MCP errors with JSON-RPC codes
// (see the ErrorCode constants). Domain outcomes such as "no recipe
// found" are not errors; they come back as formatted text.
package mcp
