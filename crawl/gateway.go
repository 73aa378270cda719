package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/bizscan"
)

// DefaultTimeout is the per-attempt fetch timeout used when Gateway.Timeout is zero.
const DefaultTimeout = bizscan.DefaultTimeoutSeconds * time.Second

// Compile-time interface verification.
var _ bizscan.FetchGateway = (*Gateway)(nil)

// Gateway fetches pages through a Fetcher with per-host rate limiting,
// per-attempt timeouts and retries. Failures are reported in the result,
// never returned or raised.
type Gateway struct {
	Fetcher     bizscan.Fetcher
	Limiter     bizscan.DomainLimiter
	Timeout     time.Duration
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Get fetches url. The result is OK only if the fetch succeeded with a
// non-empty body; an empty body is reported as EUNAVAILABLE.
func (g *Gateway) Get(ctx context.Context, rawURL string) (result bizscan.FetchResult) {
	result.URL = rawURL

	// A panicking Fetcher must not take the run down with it.
	defer func() {
		if r := recover(); r != nil {
			result.Content = ""
			result.Err = bizscan.Errorf(bizscan.EINTERNAL, "fetch %s panicked: %v", rawURL, r)
		}
	}()

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		result.Err = bizscan.Errorf(bizscan.EINVALID, "invalid URL %q", rawURL)
		return result
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	fetch := func(ctx context.Context, target string) (string, error) {
		if g.Limiter != nil {
			if err := g.Limiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return g.Fetcher.Fetch(ctx, target)
	}

	html, attempts, err := FetchWithRetryDelays(ctx, rawURL, fetch, g.Logger, g.RetryDelays)
	result.Attempts = attempts
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", rawURL, err)
		return result
	}
	if strings.TrimSpace(html) == "" {
		result.Err = bizscan.Errorf(bizscan.EUNAVAILABLE, "empty response from %s", rawURL)
		return result
	}

	result.Content = html
	return result
}
