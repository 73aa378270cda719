package bizscan

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// Any transport failure or non-2xx status is returned as an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FetchResult is the outcome of a gateway fetch. Err carries the reason
// a fetch produced no content so callers can log it.
type FetchResult struct {
	URL      string
	Content  string
	Err      error
	Attempts int
}

// OK reports whether the fetch produced content.
func (r FetchResult) OK() bool {
	return r.Err == nil && r.Content != ""
}

// FetchGateway fetches pages for the extraction pipeline.
// Implementations never return errors or panic past this boundary:
// every failure is reported through FetchResult.Err.
type FetchGateway interface {
	Get(ctx context.Context, url string) FetchResult
}

// DomainLimiter spaces out requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to host may proceed or ctx is done.
	Wait(ctx context.Context, host string) error
}
