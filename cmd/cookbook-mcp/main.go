package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Niloux/cookbook-mcp/internal/config"
	"github.com/Niloux/cookbook-mcp/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// startupTimeout bounds the initial dataset fetch.
const startupTimeout = 60 * time.Second

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("Cookbook MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("Cookbook MCP Server v%s starting...", version)

	// Optional .env file; absence is not an error
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded configuration from .env")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("recipe source: %s", cfg.BaseURL)

	// Create MCP server
	server, err := mcp.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	// Load the dataset before accepting tool calls
	initCtx, cancelInit := context.WithTimeout(context.Background(), startupTimeout)
	if err := server.Initialize(initCtx); err != nil {
		cancelInit()
		log.Fatalf("Failed to load recipe data: %v", err)
	}
	cancelInit()

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}
