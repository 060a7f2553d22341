package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niloux/cookbook-mcp/internal/config"
)

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.RequestTimeout = 2 * time.Second
	cfg.MaxRetries = 2
	cfg.RetryDelay = 5 * time.Millisecond
	return cfg
}

func TestFetchRecipesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"docs": [{"location": "dishes/staple/面条/"}, {"location": "about/"}]}`))
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	docs, err := src.FetchRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "dishes/staple/面条/", docs[0].Location)
}

func TestFetchRecipesRetriesNetworkErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"docs": []}`))
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	docs, err := src.FetchRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRecipesExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	_, err := src.FetchRecipes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	// Initial attempt plus MaxRetries
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchRecipesParseErrorsDoNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"docs": broken`))
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	_, err := src.FetchRecipes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRecipesMissingDocsField(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"config": {}}`))
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	_, err := src.FetchRecipes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRecipesContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewRemote(testConfig(srv.URL))
	_, err := src.FetchRecipes(ctx)
	require.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
	}))
	defer srv.Close()

	src := NewRemote(testConfig(srv.URL))
	assert.True(t, src.HealthCheck(context.Background()))

	srv.Close()
	assert.False(t, src.HealthCheck(context.Background()))
}

func TestSourceInfo(t *testing.T) {
	src := NewRemote(testConfig("https://cook.example.com/search/search_index.json"))
	info := src.SourceInfo()
	assert.Equal(t, "remote", info["type"])
	assert.Equal(t, "https://cook.example.com/search/search_index.json", info["base_url"])
}
