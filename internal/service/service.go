package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Niloux/cookbook-mcp/internal/cache"
	"github.com/Niloux/cookbook-mcp/internal/config"
	"github.com/Niloux/cookbook-mcp/internal/format"
	"github.com/Niloux/cookbook-mcp/internal/index"
	"github.com/Niloux/cookbook-mcp/internal/source"
	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// Cache key scopes. Batch results use their own scope so a cached
// single-recipe answer is never served for a batch of one.
const (
	allKey   = "all"
	batchKey = "batch"
)

// Service answers recipe queries, memoizing formatted results per query
// type.
type Service struct {
	cfg    config.Config
	source source.DataSource
	index  *index.Index
	caches *cache.Manager
	fmtr   *format.Formatter

	initialized atomic.Bool
	reloads     singleflight.Group

	closeOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}

	requestsTotal    atomic.Int64
	searchRequests   atomic.Int64
	randomRequests   atomic.Int64
	categoryRequests atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
}

// New creates a Service around the given data source. Call Initialize
// before issuing queries.
func New(src source.DataSource, cfg config.Config) *Service {
	return &Service{
		cfg:    cfg,
		source: src,
		index: index.New(index.Config{
			MaxSearchResults: cfg.MaxSearchResults,
			MinRandomCount:   cfg.MinRandomCount,
			MaxRandomCount:   cfg.MaxRandomCount,
		}),
		caches: cache.NewManager(cache.Options{
			SearchSize:   cfg.SearchCacheSize,
			RandomSize:   cfg.RandomCacheSize,
			CategorySize: cfg.CategoryCacheSize,
			DefaultTTL:   cfg.CacheTTL,
		}),
		fmtr: format.New(cfg.SiteURL, cfg.MaxCategoryDisplay),
		done: make(chan struct{}),
	}
}

// Initialize fetches the dataset, builds the index, and starts the
// background cache sweeper. A failure leaves the service uninitialized.
func (s *Service) Initialize(ctx context.Context) error {
	if s.initialized.Load() {
		log.Printf("service already initialized, skipping")
		return nil
	}

	if !s.source.HealthCheck(ctx) {
		log.Printf("data source health check failed, attempting fetch anyway")
	}

	recipes, err := s.loadRecipes(ctx)
	if err != nil {
		return fmt.Errorf("initial data load: %w", err)
	}
	if err := s.index.UpdateRecords(recipes); err != nil {
		return fmt.Errorf("initial index build: %w", err)
	}

	sweepCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.runSweeper(sweepCtx)

	s.initialized.Store(true)
	log.Printf("recipe service initialized with %d recipes", len(recipes))
	return nil
}

// Close stops the background sweeper. Safe to call multiple times and
// before Initialize.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
	})
}

func (s *Service) loadRecipes(ctx context.Context) ([]types.Recipe, error) {
	docs, err := s.source.FetchRecipes(ctx)
	if err != nil {
		return nil, err
	}
	recipes := source.ParseRecipes(docs)
	log.Printf("parsed %d recipes from %d raw docs", len(recipes), len(docs))
	return recipes, nil
}

func (s *Service) ready() bool {
	return s.initialized.Load()
}

// SearchRecipes runs a keyword search, returning the formatted result.
func (s *Service) SearchRecipes(ctx context.Context, keyword string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	s.searchRequests.Add(1)

	if cached, ok := s.caches.GetSearchResult(keyword); ok {
		s.cacheHits.Add(1)
		return cached, nil
	}
	s.cacheMisses.Add(1)

	result := s.index.SearchByKeyword(keyword, s.cfg.MaxSearchResults)
	out := s.fmtr.SearchResult(result)
	s.caches.SetSearchResult(keyword, out)
	return out, nil
}

// RandomRecipe recommends one recipe, optionally scoped to a category
// label. An unknown category yields the formatted invalid-category
// message, not an error.
func (s *Service) RandomRecipe(ctx context.Context, category string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	s.randomRequests.Add(1)

	if category != "" && !s.index.ValidateCategory(category) {
		return s.fmtr.InvalidCategory(category, s.categoryLabels()), nil
	}

	cacheKey := category
	if cacheKey == "" {
		cacheKey = allKey
	}
	if cached, ok := s.caches.GetRandomRecipes(cacheKey, 1); ok {
		s.cacheHits.Add(1)
		return cached, nil
	}
	s.cacheMisses.Add(1)

	var out string
	if category != "" {
		if r, ok := s.index.GetRandomRecipeByCategory(category); ok {
			out = s.fmtr.RandomRecipe(r, category)
		} else {
			out = s.fmtr.NoRecipes(category)
		}
	} else {
		if recipes := s.index.GetRandomRecipes(1, ""); len(recipes) > 0 {
			out = s.fmtr.RandomRecipe(recipes[0], "")
		} else {
			out = s.fmtr.NoRecipes("")
		}
	}

	// Short TTL: these are meant to vary between requests
	s.caches.SetRandomRecipes(cacheKey, 1, out, s.cfg.RandomResultTTL)
	return out, nil
}

// RandomRecipesBatch recommends count recipes across all categories.
func (s *Service) RandomRecipesBatch(ctx context.Context, count int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	s.randomRequests.Add(1)

	max := s.cfg.MaxRandomCount
	if s.cfg.MaxRandomResults > 0 && s.cfg.MaxRandomResults < max {
		max = s.cfg.MaxRandomResults
	}
	if count < s.cfg.MinRandomCount {
		count = s.cfg.MinRandomCount
	}
	if count > max {
		count = max
	}

	if cached, ok := s.caches.GetRandomRecipes(batchKey, count); ok {
		s.cacheHits.Add(1)
		return cached, nil
	}
	s.cacheMisses.Add(1)

	out := s.fmtr.RandomBatch(s.index.GetRandomRecipes(count, ""))
	s.caches.SetRandomRecipes(batchKey, count, out, s.cfg.RandomResultTTL)
	return out, nil
}

// RecipeURL returns the how-to-cook link for an exact dish name.
func (s *Service) RecipeURL(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)

	if r, ok := s.index.FindExact(name); ok {
		return s.fmtr.RecipeURL(r), nil
	}
	return s.fmtr.RecipeNotFound(name), nil
}

// CategoriesInfo lists every non-empty category with its recipe count.
func (s *Service) CategoriesInfo(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	s.categoryRequests.Add(1)

	if cached, ok := s.caches.GetCategoryInfo(allKey); ok {
		s.cacheHits.Add(1)
		return cached, nil
	}
	s.cacheMisses.Add(1)

	out := s.fmtr.Categories(s.index.GetCategoriesInfo(), s.index.TotalCount())
	s.caches.SetCategoryInfo(allKey, out)
	return out, nil
}

// CategoryRecipes lists the dishes of one category. An unknown category
// yields the formatted invalid-category message.
func (s *Service) CategoryRecipes(ctx context.Context, category string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.ready() {
		return "", types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	s.categoryRequests.Add(1)

	if !s.index.ValidateCategory(category) {
		return s.fmtr.InvalidCategory(category, s.categoryLabels()), nil
	}

	if cached, ok := s.caches.GetCategoryInfo(category); ok {
		s.cacheHits.Add(1)
		return cached, nil
	}
	s.cacheMisses.Add(1)

	out := s.fmtr.CategoryRecipes(category, s.index.GetRecipesByCategory(category, 0))
	s.caches.SetCategoryInfo(category, out)
	return out, nil
}

// SuggestRecipes returns up to max search completions for a partial
// keyword.
func (s *Service) SuggestRecipes(ctx context.Context, partial string, max int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.ready() {
		return nil, types.ErrNotInitialized
	}
	s.requestsTotal.Add(1)
	return s.index.Suggest(partial, max), nil
}

// Reload refetches the dataset and rebuilds the index. Concurrent calls
// share one fetch. On failure the previous index and caches stay
// authoritative.
func (s *Service) Reload(ctx context.Context) (string, error) {
	out, err, _ := s.reloads.Do("reload", func() (any, error) {
		recipes, err := s.loadRecipes(ctx)
		if err != nil {
			return nil, fmt.Errorf("reload data fetch: %w", err)
		}
		if err := s.index.UpdateRecords(recipes); err != nil {
			return nil, fmt.Errorf("reload index build: %w", err)
		}
		s.caches.ClearAll()
		log.Printf("recipe data reloaded: %d recipes", len(recipes))
		return s.fmtr.ReloadSuccess(len(recipes)), nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// categoryLabels returns the labels of all non-empty categories.
func (s *Service) categoryLabels() []string {
	info := s.index.GetCategoriesInfo()
	labels := make([]string, 0, len(info))
	for label := range info {
		labels = append(labels, label)
	}
	return labels
}

// RequestStats aggregates request-level counters.
type RequestStats struct {
	Total       int64 `json:"requests_total"`
	Search      int64 `json:"search_requests"`
	Random      int64 `json:"random_requests"`
	Category    int64 `json:"category_requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// Stats is a point-in-time snapshot of service observability data.
type Stats struct {
	Initialized  bool                       `json:"initialized"`
	TotalRecipes int                        `json:"total_recipes"`
	Requests     RequestStats               `json:"requests"`
	Index        index.Stats                `json:"index"`
	Caches       map[string]cache.TypeStats `json:"caches"`
}

// GetStats reports request counters plus index and cache statistics.
func (s *Service) GetStats() Stats {
	return Stats{
		Initialized:  s.initialized.Load(),
		TotalRecipes: s.index.TotalCount(),
		Requests: RequestStats{
			Total:       s.requestsTotal.Load(),
			Search:      s.searchRequests.Load(),
			Random:      s.randomRequests.Load(),
			Category:    s.categoryRequests.Load(),
			CacheHits:   s.cacheHits.Load(),
			CacheMisses: s.cacheMisses.Load(),
		},
		Index:  s.index.GetStats(),
		Caches: s.caches.GetCacheStats(),
	}
}

// runSweeper periodically removes expired cache entries until ctx is
// cancelled. One bad iteration never stops the loop.
func (s *Service) runSweeper(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Service) sweepOnce() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("cache sweep panicked: %v", r)
		}
	}()

	cleared := s.caches.CleanupExpired()
	if cleared.Total > 0 {
		log.Printf("cache sweep removed %d expired entries (search=%d random=%d category=%d)",
			cleared.Total, cleared.Search, cleared.Random, cleared.Category)
	}
}
