package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Niloux/cookbook-mcp/internal/index"
	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeNotReady         = -32001 // Recipe data not loaded yet
	ErrorCodeReloadInProgress = -32002 // Another reload is already running
	ErrorCodeEmptyQuery       = -32004 // Query parameter is empty
)

// Input caps, counted in runes since dish names are Chinese
const (
	maxKeywordLen = 50
	maxNameLen    = 100
)

// illegalNameChars are rejected in user-supplied names and keywords.
const illegalNameChars = "<>\"'\\`;{}"

// handleSearchRecipes handles the search_recipes tool invocation
func (s *Server) handleSearchRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	keyword, ok := args["keyword"].(string)
	keyword = strings.TrimSpace(keyword)
	if !ok || keyword == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "keyword parameter is required and cannot be empty", map[string]interface{}{
			"param":  "keyword",
			"reason": "missing or empty",
		})
	}
	if err := validateQueryText(keyword, maxKeywordLen); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid keyword", map[string]interface{}{
			"param":  "keyword",
			"reason": err.Error(),
		})
	}

	out, err := s.service.SearchRecipes(ctx, keyword)
	if err != nil {
		return nil, serviceError("search failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleRandomRecipe handles the random_recipe tool invocation
func (s *Server) handleRandomRecipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	category := strings.TrimSpace(getStringDefault(args, "category", ""))
	if category != "" {
		if err := validateQueryText(category, maxKeywordLen); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid category", map[string]interface{}{
				"param":  "category",
				"reason": err.Error(),
			})
		}
	}

	out, err := s.service.RandomRecipe(ctx, category)
	if err != nil {
		return nil, serviceError("random recommendation failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleRandomRecipes handles the random_recipes tool invocation
func (s *Server) handleRandomRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	count := getIntDefault(args, "count", 3)
	if count < 1 || count > 10 {
		return nil, newMCPError(ErrorCodeInvalidParams, "count must be between 1 and 10", map[string]interface{}{
			"param": "count",
			"value": count,
		})
	}

	out, err := s.service.RandomRecipesBatch(ctx, count)
	if err != nil {
		return nil, serviceError("random batch failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleGetRecipe handles the get_recipe tool invocation
func (s *Server) handleGetRecipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, ok := args["name"].(string)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}
	if err := validateQueryText(name, maxNameLen); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid name", map[string]interface{}{
			"param":  "name",
			"reason": err.Error(),
		})
	}

	out, err := s.service.RecipeURL(ctx, name)
	if err != nil {
		return nil, serviceError("recipe lookup failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleSuggestRecipes handles the suggest_recipes tool invocation
func (s *Server) handleSuggestRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	partial, ok := args["partial"].(string)
	partial = strings.TrimSpace(partial)
	if !ok || partial == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "partial parameter is required and cannot be empty", map[string]interface{}{
			"param":  "partial",
			"reason": "missing or empty",
		})
	}
	if err := validateQueryText(partial, maxNameLen); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid partial", map[string]interface{}{
			"param":  "partial",
			"reason": err.Error(),
		})
	}

	limit := getIntDefault(args, "limit", 5)
	if limit < 1 || limit > 20 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 20", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	suggestions, err := s.service.SuggestRecipes(ctx, partial, limit)
	if err != nil {
		return nil, serviceError("suggestion failed", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"partial":     partial,
		"suggestions": suggestions,
	})), nil
}

// handleListCategoryRecipes handles the list_category_recipes tool invocation
func (s *Server) handleListCategoryRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	category, ok := args["category"].(string)
	category = strings.TrimSpace(category)
	if !ok || category == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "category parameter is required", map[string]interface{}{
			"param":  "category",
			"reason": "missing or empty",
		})
	}
	if err := validateQueryText(category, maxKeywordLen); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid category", map[string]interface{}{
			"param":  "category",
			"reason": err.Error(),
		})
	}

	out, err := s.service.CategoryRecipes(ctx, category)
	if err != nil {
		return nil, serviceError("category listing failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleListCategories handles the list_categories tool invocation
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.service.CategoriesInfo(ctx)
	if err != nil {
		return nil, serviceError("category listing failed", err)
	}
	return mcp.NewToolResultText(out), nil
}

// handleGetStats handles the get_stats tool invocation
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.service.GetStats())), nil
}

// handleReloadRecipes handles the reload_recipes tool invocation
func (s *Server) handleReloadRecipes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := s.service.Reload(ctx)
	if err != nil {
		if errors.Is(err, index.ErrBuildInProgress) {
			return nil, newMCPError(ErrorCodeReloadInProgress, "a reload is already running", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "reload failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(out), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// serviceError maps a service failure onto an MCP error code.
func serviceError(message string, err error) error {
	if errors.Is(err, types.ErrNotInitialized) {
		return newMCPError(ErrorCodeNotReady, "recipe data not loaded yet, try again shortly", nil)
	}
	return newMCPError(ErrorCodeInternalError, message, map[string]interface{}{
		"error": err.Error(),
	})
}

// validateQueryText rejects over-long or suspicious user input.
func validateQueryText(text string, maxRunes int) error {
	if utf8.RuneCountInString(text) > maxRunes {
		return fmt.Errorf("%w: longer than %d characters", ErrInputTooLong, maxRunes)
	}
	if strings.ContainsAny(text, illegalNameChars) {
		return ErrIllegalCharacters
	}
	return nil
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrInputTooLong      = errors.New("input too long")
	ErrIllegalCharacters = errors.New("input contains illegal characters")
)
