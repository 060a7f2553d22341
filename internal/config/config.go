// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults
const (
	DefaultBaseURL = "https://cook.aiursoft.cn/search/search_index.json"
	DefaultSiteURL = "https://cook.aiursoft.cn/"

	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 1 * time.Second

	DefaultCacheTTL          = 1 * time.Hour
	DefaultSearchCacheSize   = 100
	DefaultRandomCacheSize   = 50
	DefaultCategoryCacheSize = 20
	DefaultCleanupInterval   = 5 * time.Minute
	DefaultRandomResultTTL   = 60 * time.Second

	DefaultMaxSearchResults   = 10
	DefaultMaxRandomResults   = 10
	DefaultMaxCategoryDisplay = 20
	DefaultMinRandomCount     = 1
	DefaultMaxRandomCount     = 10
)

// Config holds all runtime parameters. Values are read once at startup and
// never mutated afterwards.
type Config struct {
	// Remote data source
	BaseURL        string
	SiteURL        string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Caching
	CacheTTL          time.Duration
	SearchCacheSize   int
	RandomCacheSize   int
	CategoryCacheSize int
	CleanupInterval   time.Duration
	RandomResultTTL   time.Duration

	// Result limits
	MaxSearchResults   int
	MaxRandomResults   int
	MaxCategoryDisplay int
	MinRandomCount     int
	MaxRandomCount     int
}

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		BaseURL:            DefaultBaseURL,
		SiteURL:            DefaultSiteURL,
		RequestTimeout:     DefaultRequestTimeout,
		MaxRetries:         DefaultMaxRetries,
		RetryDelay:         DefaultRetryDelay,
		CacheTTL:           DefaultCacheTTL,
		SearchCacheSize:    DefaultSearchCacheSize,
		RandomCacheSize:    DefaultRandomCacheSize,
		CategoryCacheSize:  DefaultCategoryCacheSize,
		CleanupInterval:    DefaultCleanupInterval,
		RandomResultTTL:    DefaultRandomResultTTL,
		MaxSearchResults:   DefaultMaxSearchResults,
		MaxRandomResults:   DefaultMaxRandomResults,
		MaxCategoryDisplay: DefaultMaxCategoryDisplay,
		MinRandomCount:     DefaultMinRandomCount,
		MaxRandomCount:     DefaultMaxRandomCount,
	}
}

// Load builds a Config from defaults overridden by COOKBOOK_* environment
// variables. Malformed values fall back to the default for that field.
func Load() Config {
	cfg := Default()

	cfg.BaseURL = envString("COOKBOOK_BASE_URL", cfg.BaseURL)
	cfg.SiteURL = envString("COOKBOOK_SITE_URL", cfg.SiteURL)
	cfg.RequestTimeout = envDuration("COOKBOOK_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxRetries = envInt("COOKBOOK_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = envDuration("COOKBOOK_RETRY_DELAY", cfg.RetryDelay)

	cfg.CacheTTL = envDuration("COOKBOOK_CACHE_TTL", cfg.CacheTTL)
	cfg.SearchCacheSize = envInt("COOKBOOK_SEARCH_CACHE_SIZE", cfg.SearchCacheSize)
	cfg.RandomCacheSize = envInt("COOKBOOK_RANDOM_CACHE_SIZE", cfg.RandomCacheSize)
	cfg.CategoryCacheSize = envInt("COOKBOOK_CATEGORY_CACHE_SIZE", cfg.CategoryCacheSize)
	cfg.CleanupInterval = envDuration("COOKBOOK_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.RandomResultTTL = envDuration("COOKBOOK_RANDOM_RESULT_TTL", cfg.RandomResultTTL)

	cfg.MaxSearchResults = envInt("COOKBOOK_MAX_SEARCH_RESULTS", cfg.MaxSearchResults)
	cfg.MaxRandomResults = envInt("COOKBOOK_MAX_RANDOM_RESULTS", cfg.MaxRandomResults)
	cfg.MaxCategoryDisplay = envInt("COOKBOOK_MAX_CATEGORY_DISPLAY", cfg.MaxCategoryDisplay)
	cfg.MinRandomCount = envInt("COOKBOOK_MIN_RANDOM_COUNT", cfg.MinRandomCount)
	cfg.MaxRandomCount = envInt("COOKBOOK_MAX_RANDOM_COUNT", cfg.MaxRandomCount)

	return cfg
}

// Validate rejects configurations that cannot work.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if c.SiteURL == "" {
		return fmt.Errorf("site URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got %v", c.RetryDelay)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %v", c.CacheTTL)
	}
	if c.SearchCacheSize < 1 || c.RandomCacheSize < 1 || c.CategoryCacheSize < 1 {
		return fmt.Errorf("cache sizes must be at least 1")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %v", c.CleanupInterval)
	}
	if c.MaxSearchResults <= 0 {
		return fmt.Errorf("max search results must be positive, got %d", c.MaxSearchResults)
	}
	if c.MinRandomCount > c.MaxRandomCount {
		return fmt.Errorf("min random count %d exceeds max random count %d", c.MinRandomCount, c.MaxRandomCount)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envDuration accepts Go duration strings ("30s", "5m") or bare integers
// interpreted as seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
