package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niloux/cookbook-mcp/internal/config"
	"github.com/Niloux/cookbook-mcp/internal/source"
	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// fakeSource serves a canned doc list and counts fetches.
type fakeSource struct {
	docs    []source.RawDoc
	err     error
	healthy bool
	fetches atomic.Int64
}

func (f *fakeSource) FetchRecipes(ctx context.Context) ([]source.RawDoc, error) {
	f.fetches.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakeSource) HealthCheck(ctx context.Context) bool { return f.healthy }

func (f *fakeSource) SourceInfo() map[string]any {
	return map[string]any{"type": "fake"}
}

func docsFor(locations ...string) []source.RawDoc {
	docs := make([]source.RawDoc, len(locations))
	for i, loc := range locations {
		docs[i] = source.RawDoc{Location: loc}
	}
	return docs
}

var testDocs = docsFor(
	"dishes/staple/手工水饺/",
	"dishes/staple/蛋炒饭/",
	"dishes/meat_dish/红烧肉/",
	"dishes/vegetable_dish/炒青菜/",
	"dishes/soup/西红柿鸡蛋汤/",
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.CleanupInterval = time.Hour
	return cfg
}

func newTestService(t *testing.T, src source.DataSource) *Service {
	t.Helper()
	svc := New(src, testConfig())
	require.NoError(t, svc.Initialize(context.Background()))
	t.Cleanup(svc.Close)
	return svc
}

func TestQueriesFailBeforeInitialize(t *testing.T) {
	svc := New(&fakeSource{healthy: true}, testConfig())
	ctx := context.Background()

	_, err := svc.SearchRecipes(ctx, "鸡")
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	_, err = svc.RandomRecipe(ctx, "")
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	_, err = svc.RandomRecipesBatch(ctx, 3)
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	_, err = svc.RecipeURL(ctx, "手工水饺")
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	_, err = svc.CategoriesInfo(ctx)
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	_, err = svc.SuggestRecipes(ctx, "手", 5)
	assert.ErrorIs(t, err, types.ErrNotInitialized)
}

func TestInitializeFailureLeavesServiceUnready(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("%w: connection refused", source.ErrNetwork), healthy: false}
	svc := New(src, testConfig())

	err := svc.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNetwork)

	_, err = svc.SearchRecipes(context.Background(), "鸡")
	assert.ErrorIs(t, err, types.ErrNotInitialized)
	svc.Close()
}

func TestInitializeIsIdempotent(t *testing.T) {
	src := &fakeSource{docs: testDocs, healthy: true}
	svc := newTestService(t, src)

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, int64(1), src.fetches.Load())
	assert.Equal(t, 5, svc.GetStats().TotalRecipes)
}

func TestSearchCachesFormattedResult(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})
	ctx := context.Background()

	first, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)
	assert.Contains(t, first, "手工水饺")

	second, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stats := svc.GetStats()
	assert.Equal(t, int64(2), stats.Requests.Search)
	assert.Equal(t, int64(1), stats.Requests.CacheHits)
	assert.Equal(t, int64(1), stats.Requests.CacheMisses)
}

func TestRandomRecipeInvalidCategorySkipsCache(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	out, err := svc.RandomRecipe(context.Background(), "零食")
	require.NoError(t, err)
	assert.Contains(t, out, "未知分类: 零食")
	assert.Contains(t, out, "主食")

	stats := svc.GetStats()
	assert.Equal(t, int64(1), stats.Requests.Random)
	assert.Equal(t, int64(0), stats.Requests.CacheHits)
	assert.Equal(t, int64(0), stats.Requests.CacheMisses)
}

func TestRandomRecipeScopedToCategory(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	out, err := svc.RandomRecipe(context.Background(), "主食")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "手工水饺") || strings.Contains(out, "蛋炒饭"), "output: %s", out)

	// Served from the random cache on repeat
	again, err := svc.RandomRecipe(context.Background(), "主食")
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Equal(t, int64(1), svc.GetStats().Requests.CacheHits)
}

func TestRandomBatchClampsCount(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})
	ctx := context.Background()

	out, err := svc.RandomRecipesBatch(ctx, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	// clamped to MinRandomCount, so the same cache key as count=1
	again, err := svc.RandomRecipesBatch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Equal(t, int64(1), svc.GetStats().Requests.CacheHits)
}

func TestRecipeURLAndNotFound(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})
	ctx := context.Background()

	out, err := svc.RecipeURL(ctx, "手工水饺")
	require.NoError(t, err)
	assert.Contains(t, out, "制作方式")
	assert.Contains(t, out, "dishes/staple/")

	miss, err := svc.RecipeURL(ctx, "不存在的菜")
	require.NoError(t, err)
	assert.Contains(t, miss, "未找到菜品")
}

func TestCategoriesInfo(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	out, err := svc.CategoriesInfo(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "主食")
	assert.Contains(t, out, "荤菜")
	assert.Contains(t, out, "5")

	_, err = svc.CategoriesInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.GetStats().Requests.CacheHits)
	assert.Equal(t, int64(2), svc.GetStats().Requests.Category)
}

func TestCategoryRecipes(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})
	ctx := context.Background()

	out, err := svc.CategoryRecipes(ctx, "主食")
	require.NoError(t, err)
	assert.Contains(t, out, "手工水饺")
	assert.Contains(t, out, "蛋炒饭")

	invalid, err := svc.CategoryRecipes(ctx, "零食")
	require.NoError(t, err)
	assert.Contains(t, invalid, "未知分类")

	_, err = svc.CategoryRecipes(ctx, "主食")
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.GetStats().Requests.CacheHits)
}

func TestSuggestRecipes(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	got, err := svc.SuggestRecipes(context.Background(), "手", 5)
	require.NoError(t, err)
	assert.Contains(t, got, "手工水饺")
}

func TestReloadFailureKeepsOldData(t *testing.T) {
	src := &fakeSource{docs: testDocs, healthy: true}
	svc := newTestService(t, src)
	ctx := context.Background()

	before, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)

	src.err = fmt.Errorf("%w: timeout", source.ErrNetwork)
	_, err = svc.Reload(ctx)
	require.Error(t, err)

	// Old index and caches stay authoritative: cached answer still served
	after, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 5, svc.GetStats().TotalRecipes)
}

func TestReloadSwapsDataAndClearsCaches(t *testing.T) {
	src := &fakeSource{docs: testDocs, healthy: true}
	svc := newTestService(t, src)
	ctx := context.Background()

	_, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)

	src.docs = docsFor("dishes/dessert/提拉米苏/")
	out, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "1 个食谱")

	// cache was cleared, so the search reflects the new dataset
	miss, err := svc.SearchRecipes(ctx, "水饺")
	require.NoError(t, err)
	assert.Contains(t, miss, "未找到")
	assert.Equal(t, 1, svc.GetStats().TotalRecipes)
}

func TestStatsSnapshot(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	_, err := svc.SearchRecipes(context.Background(), "汤")
	require.NoError(t, err)

	stats := svc.GetStats()
	assert.True(t, stats.Initialized)
	assert.Equal(t, 5, stats.TotalRecipes)
	assert.Equal(t, int64(1), stats.Requests.Total)
	assert.Equal(t, 5, stats.Index.TotalRecipes)
	assert.Len(t, stats.Caches, 3)
}

func TestCancelledContextRejected(t *testing.T) {
	svc := newTestService(t, &fakeSource{docs: testDocs, healthy: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SearchRecipes(ctx, "鸡")
	assert.ErrorIs(t, err, context.Canceled)
}
