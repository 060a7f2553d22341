package source

import (
	"context"
	"time"
)

// retryConfig configures exponential backoff retry behavior.
type retryConfig struct {
	MaxRetries int           // Retry attempts after the first try
	BaseDelay  time.Duration // Initial delay between attempts
	MaxDelay   time.Duration // Cap on the backoff delay
	Multiplier float64       // Backoff growth factor
}

// retryWithBackoff executes fn with exponential backoff. Errors for which
// retryable returns false abort immediately, as does context cancellation.
func retryWithBackoff[T any](ctx context.Context, config retryConfig, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !retryable(err) {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		// Back off before the next attempt
		if attempt < config.MaxRetries {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, lastErr
}
