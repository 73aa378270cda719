package crawl

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/bizscan"
	"golang.org/x/sync/errgroup"
)

// Enricher upgrades summary records with data from their detail pages.
// At most MaxDetailRequests detail fetches are attempted per call to Enrich,
// failed ones included.
type Enricher struct {
	Gateway           bizscan.FetchGateway
	Details           bizscan.DetailExtractor
	MaxDetailRequests int
	Concurrency       int
	Progress          ProgressFunc
}

// EnrichStats summarizes a call to Enrich.
type EnrichStats struct {
	Attempted int
	Enriched  int
	Failed    int
}

// budget hands out a fixed number of fetch slots across goroutines.
type budget struct {
	used  atomic.Int64
	limit int64
}

// acquire claims a slot, reporting false once the limit is reached.
func (b *budget) acquire() bool {
	for {
		n := b.used.Load()
		if n >= b.limit {
			return false
		}
		if b.used.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Enrich returns a slice the same length and order as records. Records are
// claimed for fetching in input order; a record without URL, one beyond the
// budget, or one whose fetch or parse fails is returned as is. The others are
// replaced by a merged copy with detail fields laid over the summary.
func (e *Enricher) Enrich(ctx context.Context, records []*bizscan.BusinessRecord) ([]*bizscan.BusinessRecord, EnrichStats) {
	results := make([]*bizscan.BusinessRecord, len(records))
	copy(results, records)

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	slots := &budget{limit: int64(e.MaxDetailRequests)}
	var enriched, failed atomic.Int64
	var progressMu sync.Mutex
	report := func(event ProgressEvent) {
		if e.Progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		e.Progress(event)
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, record := range records {
		if !record.HasURL() || !slots.acquire() {
			continue
		}
		g.Go(func() error {
			merged, err := e.enrichOne(ctx, record)
			if err != nil {
				failed.Add(1)
				report(ProgressEvent{Type: ProgressDetailFailed, URL: *record.URL, Err: err})
				return nil
			}
			results[i] = merged
			enriched.Add(1)
			report(ProgressEvent{Type: ProgressDetailFetched, URL: *record.URL})
			return nil
		})
	}
	_ = g.Wait()

	return results, EnrichStats{
		Attempted: int(slots.used.Load()),
		Enriched:  int(enriched.Load()),
		Failed:    int(failed.Load()),
	}
}

// enrichOne fetches and parses the detail page of record.
func (e *Enricher) enrichOne(ctx context.Context, record *bizscan.BusinessRecord) (*bizscan.BusinessRecord, error) {
	url := *record.URL
	result := e.Gateway.Get(ctx, url)
	if !result.OK() {
		return nil, fetchError(result)
	}

	detail, err := e.Details.ExtractDetail(result.Content, url)
	if err != nil {
		return nil, err
	}
	return record.Overlay(detail), nil
}
