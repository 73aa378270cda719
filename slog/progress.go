package slog

import (
	"log/slog"

	"github.com/fwojciec/bizscan/crawl"
)

// NewProgressLogger returns a crawl.ProgressFunc that logs run progress.
func NewProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressInputStarted:
			logger.Info("processing input", "kind", event.Input.Kind, "input", event.Input.Value)
		case crawl.ProgressInputCompleted:
			logger.Info("input done", "input", event.Input.Value, "records", event.Records)
		case crawl.ProgressInputSkipped:
			logger.Warn("skipping input", "input", event.Input.Value, "err", event.Err)
		case crawl.ProgressDetailFetched:
			logger.Debug("enriched", "url", event.URL)
		case crawl.ProgressDetailFailed:
			logger.Debug("enrichment skipped", "url", event.URL, "err", event.Err)
		case crawl.ProgressFinished:
			logger.Info("run finished", "records", event.Records)
		}
	}
}
