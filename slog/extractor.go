package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bizscan"
)

// Ensure LoggingListingExtractor implements bizscan.ListingExtractor.
var _ bizscan.ListingExtractor = (*LoggingListingExtractor)(nil)

// LoggingListingExtractor wraps a ListingExtractor with debug logging.
type LoggingListingExtractor struct {
	next   bizscan.ListingExtractor
	logger *slog.Logger
}

// NewLoggingListingExtractor creates a new LoggingListingExtractor.
func NewLoggingListingExtractor(next bizscan.ListingExtractor, logger *slog.Logger) *LoggingListingExtractor {
	return &LoggingListingExtractor{next: next, logger: logger}
}

// ExtractListings delegates to the wrapped extractor and logs the result.
func (e *LoggingListingExtractor) ExtractListings(html string, baseURL string, maxResults int) (records []*bizscan.BusinessRecord, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract listings",
			"base_url", baseURL,
			"max", maxResults,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractListings(html, baseURL, maxResults)
}

// Ensure LoggingDetailExtractor implements bizscan.DetailExtractor.
var _ bizscan.DetailExtractor = (*LoggingDetailExtractor)(nil)

// LoggingDetailExtractor wraps a DetailExtractor with debug logging of
// which fields were found.
type LoggingDetailExtractor struct {
	next   bizscan.DetailExtractor
	logger *slog.Logger
}

// NewLoggingDetailExtractor creates a new LoggingDetailExtractor.
func NewLoggingDetailExtractor(next bizscan.DetailExtractor, logger *slog.Logger) *LoggingDetailExtractor {
	return &LoggingDetailExtractor{next: next, logger: logger}
}

// ExtractDetail delegates to the wrapped extractor and logs the result.
func (e *LoggingDetailExtractor) ExtractDetail(html string, url string) (record *bizscan.BusinessRecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin), "err", err}
		if record != nil {
			attrs = append(attrs,
				"name", record.BusinessName != nil,
				"address", record.Address != nil,
				"phone", record.PhoneNumber != nil,
				"rating", record.Rating != nil,
				"review", record.ReviewText != nil,
			)
		}
		e.logger.Debug("extract detail", attrs...)
	}(time.Now())
	return e.next.ExtractDetail(html, url)
}
