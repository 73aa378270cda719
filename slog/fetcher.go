// Package slog provides logging decorators for bizscan services using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizscan"
)

// Ensure LoggingFetcher implements bizscan.Fetcher.
var _ bizscan.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging of every attempt.
type LoggingFetcher struct {
	next   bizscan.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next bizscan.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingGateway implements bizscan.FetchGateway.
var _ bizscan.FetchGateway = (*LoggingGateway)(nil)

// LoggingGateway wraps a FetchGateway and logs each result. Failures are
// logged at warn level since the gateway itself never surfaces them.
type LoggingGateway struct {
	next   bizscan.FetchGateway
	logger *slog.Logger
}

// NewLoggingGateway creates a new LoggingGateway.
func NewLoggingGateway(next bizscan.FetchGateway, logger *slog.Logger) *LoggingGateway {
	return &LoggingGateway{next: next, logger: logger}
}

// Get delegates to the wrapped gateway and logs the outcome.
func (g *LoggingGateway) Get(ctx context.Context, url string) (result bizscan.FetchResult) {
	defer func(begin time.Time) {
		if result.Err != nil {
			g.logger.Warn("failed to fetch",
				"url", url,
				"attempts", result.Attempts,
				"duration", time.Since(begin),
				"err", result.Err,
			)
			return
		}
		g.logger.Info("fetched",
			"url", url,
			"bytes", len(result.Content),
			"attempts", result.Attempts,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return g.next.Get(ctx, url)
}
