package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// FetchWithRetryDelays calls fetch until it succeeds, retrying after each
// failure with the given delays. An empty delays slice means a single attempt.
// The logger, if provided, is called for each retry attempt. It returns the
// body, the number of attempts made and the last error.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, int, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	attempt := 0
	for attempt < maxAttempts {
		html, err := fetch(ctx, url)
		attempt++
		if err == nil {
			return html, attempt, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", attempt, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return "", attempt, ctx.Err()
		case <-time.After(delays[attempt-1]):
		}
	}

	return "", attempt, lastErr
}
