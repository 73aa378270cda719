package bizscan

import (
	"context"
	"time"
)

// Run is one exported scrape run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	RecordCount int
}

// StoredRecord is a BusinessRecord persisted as part of a run.
type StoredRecord struct {
	RunID       string
	Position    int
	ContentHash string
	Record      *BusinessRecord
}

// RecordFilter narrows a stored record lookup.
type RecordFilter struct {
	RunID       *string
	URL         *string
	ContentHash *string

	Limit  int
	Offset int
}

// RecordService reads back records written by a persistent exporter.
type RecordService interface {
	// FindRuns returns runs ordered newest first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// FindRecords returns stored records ordered by run and position.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)
}
