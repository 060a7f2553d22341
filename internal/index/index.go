package index

import (
	"errors"
	"log"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// ErrBuildInProgress is returned when a rebuild is requested while another
// rebuild is still running.
var ErrBuildInProgress = errors.New("index rebuild already in progress")

// Default limits applied when Config leaves them zero
const (
	defaultMaxSearchResults = 10
	defaultMinRandomCount   = 1
	defaultMaxRandomCount   = 10
)

// relevanceFallback ranks matches whose name does not contain the keyword
// directly (reachable only through indirect token matches) last.
const relevanceFallback = 1000

// Config contains tunable limits for the index.
type Config struct {
	MaxSearchResults int // Default result cap for keyword search
	MinRandomCount   int // Lower clamp for random sampling
	MaxRandomCount   int // Upper clamp for random sampling
}

// snapshot is one fully built, immutable generation of the index. Queries
// hold a snapshot pointer and never observe a partially built state.
type snapshot struct {
	recipes    map[string]types.Recipe            // name -> record
	names      map[string]types.Recipe            // exact and lowercased name -> record
	categories map[string][]types.Recipe          // category label -> records
	keywords   map[string]map[string]struct{}     // token -> set of names
	pools      map[string][]types.Recipe          // category label ("" = all) -> pre-shuffled records
	total      int
}

// Index answers recipe queries against an atomically replaceable snapshot.
type Index struct {
	cfg Config

	mu   sync.RWMutex
	snap *snapshot

	building buildLock
}

// New creates an empty Index. Queries against it return empty results until
// the first UpdateRecords.
func New(cfg Config) *Index {
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = defaultMaxSearchResults
	}
	if cfg.MinRandomCount <= 0 {
		cfg.MinRandomCount = defaultMinRandomCount
	}
	if cfg.MaxRandomCount < cfg.MinRandomCount {
		cfg.MaxRandomCount = defaultMaxRandomCount
	}
	return &Index{
		cfg:  cfg,
		snap: buildSnapshot(nil),
	}
}

// UpdateRecords rebuilds every structure from records and publishes the new
// snapshot atomically. Readers see either the old or the new generation,
// never a mix. At most one rebuild may run at a time.
func (idx *Index) UpdateRecords(records []types.Recipe) error {
	if !idx.building.TryAcquire() {
		return ErrBuildInProgress
	}
	defer idx.building.Release()

	snap := buildSnapshot(records)

	idx.mu.Lock()
	idx.snap = snap
	idx.mu.Unlock()

	log.Printf("index rebuilt: %d recipes, %d categories, %d keywords",
		snap.total, len(snap.categories), len(snap.keywords))
	return nil
}

// load returns the current snapshot.
func (idx *Index) load() *snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.snap
}

// buildSnapshot constructs a complete snapshot from records, deduplicating
// on (name, category label).
func buildSnapshot(records []types.Recipe) *snapshot {
	snap := &snapshot{
		recipes:    make(map[string]types.Recipe, len(records)),
		names:      make(map[string]types.Recipe, len(records)*2),
		categories: make(map[string][]types.Recipe),
		keywords:   make(map[string]map[string]struct{}),
		pools:      make(map[string][]types.Recipe),
	}

	seen := make(map[string]struct{}, len(records))
	all := make([]types.Recipe, 0, len(records))

	for _, r := range records {
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		snap.recipes[r.Name] = r
		snap.names[r.Name] = r
		snap.names[strings.ToLower(r.Name)] = r
		snap.categories[r.CategoryLabel] = append(snap.categories[r.CategoryLabel], r)
		indexKeywords(snap.keywords, r.Name)
		all = append(all, r)
	}

	for label, recipes := range snap.categories {
		snap.pools[label] = shuffled(recipes)
	}
	snap.pools[""] = shuffled(all)
	snap.total = len(all)

	return snap
}

// indexKeywords registers name under every single non-whitespace character
// plus every contiguous 2- and 3-rune substring of its lowercase form.
func indexKeywords(keywords map[string]map[string]struct{}, name string) {
	runes := []rune(strings.ToLower(name))

	addToken := func(token string) {
		if strings.TrimSpace(token) == "" {
			return
		}
		names, ok := keywords[token]
		if !ok {
			names = make(map[string]struct{})
			keywords[token] = names
		}
		names[name] = struct{}{}
	}

	for i := range runes {
		addToken(string(runes[i]))
		for _, length := range []int{2, 3} {
			if i+length <= len(runes) {
				addToken(string(runes[i : i+length]))
			}
		}
	}
}

func shuffled(recipes []types.Recipe) []types.Recipe {
	pool := make([]types.Recipe, len(recipes))
	copy(pool, recipes)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// FindExact looks a recipe up by name, trying the exact form first and the
// lowercase form as a fallback. O(1).
func (idx *Index) FindExact(name string) (types.Recipe, bool) {
	if strings.TrimSpace(name) == "" {
		return types.Recipe{}, false
	}
	snap := idx.load()

	if r, ok := snap.names[name]; ok {
		return r, true
	}
	r, ok := snap.names[strings.ToLower(name)]
	return r, ok
}

// SearchByKeyword finds recipes whose names contain keyword, ranked by
// relevance. maxResults <= 0 uses the configured default.
func (idx *Index) SearchByKeyword(keyword string, maxResults int) types.SearchResult {
	if strings.TrimSpace(keyword) == "" {
		return types.SearchResult{Query: keyword}
	}
	if maxResults <= 0 {
		maxResults = idx.cfg.MaxSearchResults
	}

	snap := idx.load()
	kw := strings.ToLower(keyword)

	matched := make(map[string]struct{})
	if names, ok := snap.keywords[kw]; ok {
		for name := range names {
			matched[name] = struct{}{}
		}
	}
	// Expand through every indexed token containing the keyword, so a
	// single-rune query reaches all multi-rune tokens built around it.
	for token, names := range snap.keywords {
		if strings.Contains(token, kw) {
			for name := range names {
				matched[name] = struct{}{}
			}
		}
	}

	recipes := make([]types.Recipe, 0, len(matched))
	for name := range matched {
		if r, ok := snap.recipes[name]; ok {
			recipes = append(recipes, r)
		}
	}

	sort.Slice(recipes, func(i, j int) bool {
		si, sj := relevance(recipes[i].Name, kw), relevance(recipes[j].Name, kw)
		if si != sj {
			return si < sj
		}
		return recipes[i].Name < recipes[j].Name
	})

	total := len(recipes)
	hasMore := total > maxResults
	if hasMore {
		recipes = recipes[:maxResults]
	}

	return types.SearchResult{
		Recipes:    recipes,
		TotalCount: total,
		HasMore:    hasMore,
		Query:      keyword,
	}
}

// relevance scores a match; lower is more relevant. Exact match scores 0,
// prefix match 1, substring match 2 plus the rune position of the first
// occurrence.
func relevance(name, keyword string) int {
	lower := strings.ToLower(name)

	if lower == keyword {
		return 0
	}
	if strings.HasPrefix(lower, keyword) {
		return 1
	}
	if pos := strings.Index(lower, keyword); pos >= 0 {
		return 2 + utf8.RuneCountInString(lower[:pos])
	}
	return relevanceFallback
}

// GetRandomRecipes draws count recipes from the pre-shuffled pool for
// categoryLabel ("" or unknown label falls back to the all-categories
// pool). count is clamped to the configured bounds; sampling is without
// replacement. Requests covering the whole pool return it in pre-shuffled
// order.
func (idx *Index) GetRandomRecipes(count int, categoryLabel string) []types.Recipe {
	if count < idx.cfg.MinRandomCount {
		count = idx.cfg.MinRandomCount
	}
	if count > idx.cfg.MaxRandomCount {
		count = idx.cfg.MaxRandomCount
	}

	snap := idx.load()

	poolKey := ""
	if categoryLabel != "" {
		if _, ok := snap.pools[categoryLabel]; ok {
			poolKey = categoryLabel
		}
	}

	pool := snap.pools[poolKey]
	if len(pool) == 0 {
		return nil
	}

	if count >= len(pool) {
		out := make([]types.Recipe, len(pool))
		copy(out, pool)
		return out
	}

	out := make([]types.Recipe, 0, count)
	for _, i := range rand.Perm(len(pool))[:count] {
		out = append(out, pool[i])
	}
	return out
}

// GetRandomRecipeByCategory draws one recipe from a category pool.
func (idx *Index) GetRandomRecipeByCategory(categoryLabel string) (types.Recipe, bool) {
	recipes := idx.GetRandomRecipes(1, categoryLabel)
	if len(recipes) == 0 {
		return types.Recipe{}, false
	}
	return recipes[0], true
}

// GetRecipesByCategory returns the records of one category in index order,
// truncated to maxResults when positive.
func (idx *Index) GetRecipesByCategory(categoryLabel string, maxResults int) []types.Recipe {
	snap := idx.load()
	recipes, ok := snap.categories[categoryLabel]
	if !ok {
		return nil
	}
	if maxResults > 0 && len(recipes) > maxResults {
		recipes = recipes[:maxResults]
	}
	out := make([]types.Recipe, len(recipes))
	copy(out, recipes)
	return out
}

// GetCategoriesInfo returns category label -> recipe count for every
// category with at least one record.
func (idx *Index) GetCategoriesInfo() map[string]int {
	snap := idx.load()
	info := make(map[string]int, len(snap.categories))
	for label, recipes := range snap.categories {
		if len(recipes) > 0 {
			info[label] = len(recipes)
		}
	}
	return info
}

// ValidateCategory reports whether categoryLabel names a category with at
// least one record.
func (idx *Index) ValidateCategory(categoryLabel string) bool {
	snap := idx.load()
	return len(snap.categories[categoryLabel]) > 0
}

// TotalCount returns the number of distinct recipes in the index.
func (idx *Index) TotalCount() int {
	return idx.load().total
}

// Suggest returns up to max completions for a partial keyword: indexed
// tokens extending it plus recipe names starting with it, sorted.
func (idx *Index) Suggest(partial string, max int) []string {
	if strings.TrimSpace(partial) == "" || max <= 0 {
		return nil
	}

	snap := idx.load()
	lower := strings.ToLower(partial)
	suggestions := make(map[string]struct{})

	for token := range snap.keywords {
		if strings.HasPrefix(token, lower) && utf8.RuneCountInString(token) > utf8.RuneCountInString(lower) {
			suggestions[token] = struct{}{}
		}
	}
	for name := range snap.recipes {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			suggestions[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(suggestions))
	for s := range suggestions {
		out = append(out, s)
	}
	sort.Strings(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Stats describes the sizes of the index structures.
type Stats struct {
	TotalRecipes    int            `json:"total_recipes"`
	TotalCategories int            `json:"total_categories"`
	TotalKeywords   int            `json:"total_keywords"`
	Categories      map[string]int `json:"categories"`
	NameEntries     int            `json:"name_entries"`
	CategoryEntries int            `json:"category_entries"`
	KeywordPostings int            `json:"keyword_postings"`
	PoolSizes       map[string]int `json:"pool_sizes"`
}

// GetStats reports structure sizes for the current snapshot.
func (idx *Index) GetStats() Stats {
	snap := idx.load()

	postings := 0
	for _, names := range snap.keywords {
		postings += len(names)
	}
	categoryEntries := 0
	for _, recipes := range snap.categories {
		categoryEntries += len(recipes)
	}
	pools := make(map[string]int, len(snap.pools))
	for key, pool := range snap.pools {
		pools[key] = len(pool)
	}

	return Stats{
		TotalRecipes:    snap.total,
		TotalCategories: len(snap.categories),
		TotalKeywords:   len(snap.keywords),
		Categories:      idx.GetCategoriesInfo(),
		NameEntries:     len(snap.names),
		CategoryEntries: categoryEntries,
		KeywordPostings: postings,
		PoolSizes:       pools,
	}
}
