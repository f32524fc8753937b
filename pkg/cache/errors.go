package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/uxl/pkg/httputil"
)

var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned when a Redis or MongoDB backend cannot be reached.
	ErrNetwork = errors.New("network error")

	// ErrUnknownBackend is returned by [Open] for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// Backend retry policy: three attempts starting one second apart.
const (
	retryAttempts = 3
	retryDelay    = time.Second
)

// RetryableError is the retry marker shared with the image prober.
type RetryableError = httputil.RetryableError

// Retryable marks err as worth another attempt. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the retry marker.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs a backend operation under the cache retry policy.
// Only errors wrapped with [Retryable] are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, retryAttempts, retryDelay, fn)
}
