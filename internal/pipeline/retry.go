package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/tripgest/internal/backend"
)

const (
	MaxRetries = 3

	backoffBase = time.Second
	backoffCap  = 30 * time.Second
)

// IsRetryable reports whether err wraps a transient backend failure.
func IsRetryable(err error) bool {
	var retryErr *backend.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns the delay before retry n (0-indexed): backoffBase doubled
// per attempt, capped at backoffCap, plus up to 50% jitter.
func Backoff(attempt int) time.Duration {
	base := min(backoffBase<<uint(attempt), backoffCap)
	return base + time.Duration(rand.Int64N(int64(base)/2))
}

// RetryDelay honours a backend Retry-After hint, capped at backoffCap, and
// falls back to Backoff otherwise.
func RetryDelay(err error, attempt int) time.Duration {
	var retryErr *backend.RetryableError
	if errors.As(err, &retryErr) && retryErr.RetryAfter > 0 {
		return min(retryErr.RetryAfter, backoffCap)
	}
	return Backoff(attempt)
}
