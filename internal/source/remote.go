package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Niloux/cookbook-mcp/internal/config"
)

const (
	backoffMultiplier  = 2.0
	maxBackoff         = 30 * time.Second
	healthCheckTimeout = 5 * time.Second
)

// RemoteSource fetches the recipe search index from the remote site.
type RemoteSource struct {
	cfg        config.Config
	httpClient *http.Client
}

// NewRemote creates a RemoteSource using the configured endpoint, timeout,
// and retry policy.
func NewRemote(cfg config.Config) *RemoteSource {
	return &RemoteSource{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// FetchRecipes retrieves the raw doc list, retrying transient network
// failures with exponential backoff. Parse and validation failures abort
// immediately.
func (r *RemoteSource) FetchRecipes(ctx context.Context) ([]RawDoc, error) {
	retry := retryConfig{
		MaxRetries: r.cfg.MaxRetries,
		BaseDelay:  r.cfg.RetryDelay,
		MaxDelay:   maxBackoff,
		Multiplier: backoffMultiplier,
	}

	return retryWithBackoff(ctx, retry, isRetryable, func() ([]RawDoc, error) {
		return r.fetchOnce(ctx)
	})
}

func (r *RemoteSource) fetchOnce(ctx context.Context) ([]RawDoc, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", ErrNetwork, r.cfg.BaseURL, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrNetwork, resp.StatusCode, r.cfg.BaseURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrNetwork, err)
	}

	var payload struct {
		Docs []RawDoc `json:"docs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if payload.Docs == nil {
		return nil, fmt.Errorf("%w: response has no docs field", ErrValidation)
	}

	log.Printf("fetched %d raw docs from %s", len(payload.Docs), r.cfg.BaseURL)
	return payload.Docs, nil
}

// HealthCheck issues a HEAD request with a short timeout.
func (r *RemoteSource) HealthCheck(ctx context.Context) bool {
	timeout := healthCheckTimeout
	if r.cfg.RequestTimeout < timeout {
		timeout = r.cfg.RequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.cfg.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// SourceInfo describes the remote source configuration.
func (r *RemoteSource) SourceInfo() map[string]any {
	return map[string]any{
		"type":        "remote",
		"base_url":    r.cfg.BaseURL,
		"site_url":    r.cfg.SiteURL,
		"timeout":     r.cfg.RequestTimeout.String(),
		"max_retries": r.cfg.MaxRetries,
		"retry_delay": r.cfg.RetryDelay.String(),
	}
}

// isRetryable reports whether an error is worth another attempt. Only
// transport-level failures are; malformed payloads will not fix themselves.
func isRetryable(err error) bool {
	return !errors.Is(err, ErrParse) && !errors.Is(err, ErrValidation)
}
