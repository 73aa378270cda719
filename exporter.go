package bizscan

import "context"

// Exporter writes the final records of a run.
type Exporter interface {
	Export(ctx context.Context, records []*BusinessRecord) error
}
