package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Niloux/cookbook-mcp/internal/config"
	"github.com/Niloux/cookbook-mcp/internal/format"
	"github.com/Niloux/cookbook-mcp/internal/service"
	"github.com/Niloux/cookbook-mcp/internal/source"
)

const (
	// ServerName is the MCP server name
	ServerName = "cookbook-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	service *service.Service
}

// NewServer creates a new MCP server instance. The recipe data is not
// loaded yet; call Initialize before Serve.
func NewServer(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	src := source.NewRemote(cfg)
	svc := service.New(src, cfg)

	helpText := format.New(cfg.SiteURL, cfg.MaxCategoryDisplay).Help()
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithInstructions(helpText),
	)

	s := &Server{
		mcp:     mcpServer,
		service: svc,
	}

	s.registerTools()

	return s, nil
}

// Initialize loads the recipe dataset and builds the search index.
func (s *Server) Initialize(ctx context.Context) error {
	return s.service.Initialize(ctx)
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer s.service.Close()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchRecipesTool(), s.handleSearchRecipes)
	s.mcp.AddTool(randomRecipeTool(), s.handleRandomRecipe)
	s.mcp.AddTool(randomRecipesTool(), s.handleRandomRecipes)
	s.mcp.AddTool(getRecipeTool(), s.handleGetRecipe)
	s.mcp.AddTool(suggestRecipesTool(), s.handleSuggestRecipes)
	s.mcp.AddTool(listCategoriesTool(), s.handleListCategories)
	s.mcp.AddTool(listCategoryRecipesTool(), s.handleListCategoryRecipes)
	s.mcp.AddTool(getStatsTool(), s.handleGetStats)
	s.mcp.AddTool(reloadRecipesTool(), s.handleReloadRecipes)
}
