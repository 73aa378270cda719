// Package crawl orchestrates a scraping run: fetching search and detail
// pages, extracting records and enriching them within a request budget.
package crawl

import (
	"context"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/bloom"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressInputStarted ProgressType = iota
	ProgressInputCompleted
	ProgressInputSkipped
	ProgressDetailFetched
	ProgressDetailFailed
	ProgressFinished
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type    ProgressType
	Input   bizscan.Input
	URL     string
	Records int
	Err     error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Runner processes inputs one at a time. An input that cannot be fetched or
// parsed is skipped; the run carries on with the rest.
type Runner struct {
	Gateway  bizscan.FetchGateway
	Listings bizscan.ListingExtractor
	Details  bizscan.DetailExtractor
	Settings bizscan.Settings

	// Location biases search queries, e.g. "San Francisco, CA".
	Location string

	// MaxResults caps the records returned by the whole run. Zero means no cap.
	MaxResults int

	// Seen, if set, drops records whose URL was already emitted earlier in
	// the run. Bloom filter false positives can drop a distinct record.
	Seen *bloom.Filter

	Progress ProgressFunc
}

// RunResult holds the outcome of a run.
type RunResult struct {
	Records       []*bizscan.BusinessRecord
	Processed     int
	Skipped       int
	Duplicates    int
	DetailFetches int
}

// Run processes inputs in order and returns the collected records.
// The error is non-nil only if ctx ends the run early; the partial result
// is returned with it.
func (r *Runner) Run(ctx context.Context, inputs []bizscan.Input) (*RunResult, error) {
	result := &RunResult{Records: []*bizscan.BusinessRecord{}}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if r.MaxResults > 0 && len(result.Records) >= r.MaxResults {
			break
		}

		r.report(ProgressEvent{Type: ProgressInputStarted, Input: input})

		records, fetches, err := r.process(ctx, input)
		result.DetailFetches += fetches
		if err != nil {
			result.Skipped++
			r.report(ProgressEvent{Type: ProgressInputSkipped, Input: input, Err: err})
			continue
		}
		result.Processed++

		records, dups := r.dedupe(records)
		result.Duplicates += dups
		result.Records = append(result.Records, records...)

		r.report(ProgressEvent{Type: ProgressInputCompleted, Input: input, Records: len(records)})
	}

	if r.MaxResults > 0 && len(result.Records) > r.MaxResults {
		result.Records = result.Records[:r.MaxResults]
	}

	r.report(ProgressEvent{Type: ProgressFinished, Records: len(result.Records)})
	return result, nil
}

// process turns one input into records. The int result counts detail
// page fetches attempted during enrichment.
func (r *Runner) process(ctx context.Context, input bizscan.Input) ([]*bizscan.BusinessRecord, int, error) {
	if input.Kind == bizscan.InputURL {
		record, err := r.detail(ctx, input.Value)
		if err != nil {
			return nil, 0, err
		}
		return []*bizscan.BusinessRecord{record}, 0, nil
	}
	return r.search(ctx, input.Value)
}

// detail fetches and parses a single detail page.
func (r *Runner) detail(ctx context.Context, url string) (*bizscan.BusinessRecord, error) {
	fetched := r.Gateway.Get(ctx, url)
	if !fetched.OK() {
		return nil, fetchError(fetched)
	}
	return r.Details.ExtractDetail(fetched.Content, url)
}

// search fetches the results page for query, extracts summaries and
// enriches them.
func (r *Runner) search(ctx context.Context, query string) ([]*bizscan.BusinessRecord, int, error) {
	searchURL, err := bizscan.SearchURL(r.Settings.BaseURL, r.Settings.SearchPath, query, r.Location)
	if err != nil {
		return nil, 0, err
	}

	fetched := r.Gateway.Get(ctx, searchURL)
	if !fetched.OK() {
		return nil, 0, fetchError(fetched)
	}

	summaries, err := r.Listings.ExtractListings(fetched.Content, r.Settings.BaseURL, r.Settings.MaxResultsPerQuery)
	if err != nil {
		return nil, 0, err
	}

	enricher := &Enricher{
		Gateway:           r.Gateway,
		Details:           r.Details,
		MaxDetailRequests: r.Settings.MaxDetailRequestsPerQuery,
		Concurrency:       r.Settings.Concurrency,
		Progress:          r.Progress,
	}
	records, stats := enricher.Enrich(ctx, summaries)
	return records, stats.Attempted, nil
}

// dedupe drops records already emitted earlier in the run.
func (r *Runner) dedupe(records []*bizscan.BusinessRecord) ([]*bizscan.BusinessRecord, int) {
	if r.Seen == nil {
		return records, 0
	}
	kept := records[:0:0]
	dups := 0
	for _, record := range records {
		if record.HasURL() && r.Seen.TestAndAdd(*record.URL) {
			dups++
			continue
		}
		kept = append(kept, record)
	}
	return kept, dups
}

func (r *Runner) report(event ProgressEvent) {
	if r.Progress != nil {
		r.Progress(event)
	}
}

// fetchError returns the reason a gateway fetch produced nothing.
func fetchError(result bizscan.FetchResult) error {
	if result.Err != nil {
		return result.Err
	}
	return bizscan.Errorf(bizscan.EUNAVAILABLE, "no content for %s", result.URL)
}
