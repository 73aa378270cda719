package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/bloom"
	"github.com/fwojciec/bizscan/crawl"
	"github.com/fwojciec/bizscan/fs"
	"github.com/fwojciec/bizscan/goquery"
	bizhttp "github.com/fwojciec/bizscan/http"
	bizprom "github.com/fwojciec/bizscan/prometheus"
	bizslog "github.com/fwojciec/bizscan/slog"
	"github.com/fwojciec/bizscan/sqlite"
)

// dedupeFalsePositiveRate is the bloom filter error rate for --dedupe.
const dedupeFalsePositiveRate = 0.001

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	settings := deps.Settings
	if c.Concurrency > 0 {
		settings.Concurrency = c.Concurrency
	}
	if c.RPS > 0 {
		settings.RequestsPerSecond = c.RPS
	}
	if c.MaxResults < 0 {
		return bizscan.Errorf(bizscan.EINVALID, "--max-results must not be negative")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	inputs, err := bizscan.LoadInputs(c.Inputs)
	if err != nil {
		return err
	}

	logger := deps.Logger

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = bizhttp.NewFetcher(
			bizhttp.WithTimeout(settings.Timeout()),
			bizhttp.WithUserAgent(settings.UserAgent),
		)
	}
	fetcher = bizslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	var gateway bizscan.FetchGateway = &crawl.Gateway{
		Fetcher:     fetcher,
		Limiter:     crawl.NewDomainLimiter(settings.RequestsPerSecond),
		Timeout:     settings.Timeout(),
		RetryDelays: settings.RetryDelays(),
		Logger: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
	}
	gateway = bizslog.NewLoggingGateway(gateway, logger)

	var metrics *bizprom.Metrics
	if c.MetricsFile != "" {
		metrics = bizprom.NewMetrics()
		gateway = bizprom.NewMetricsGateway(gateway, metrics)
	}

	runner := &crawl.Runner{
		Gateway: gateway,
		Listings: bizslog.NewLoggingListingExtractor(
			goquery.NewListingExtractor(goquery.WithBusinessPathPrefix(settings.BusinessPathPrefix)),
			logger,
		),
		Details:    bizslog.NewLoggingDetailExtractor(goquery.NewDetailExtractor(), logger),
		Settings:   settings,
		Location:   c.Location,
		MaxResults: c.MaxResults,
		Progress:   bizslog.NewProgressLogger(logger),
	}
	if c.Dedupe {
		runner.Seen = bloom.NewFilter(dedupeCapacity(len(inputs), settings.MaxResultsPerQuery), dedupeFalsePositiveRate)
	}

	result, err := runner.Run(deps.Ctx, inputs)
	if err != nil {
		return err
	}

	logger.Info("scrape complete",
		"records", len(result.Records),
		"processed", result.Processed,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
		"detail_fetches", result.DetailFetches,
	)

	if runner.Seen != nil {
		logger.Debug("dedupe filter", "urls", runner.Seen.EstimatedCount())
	}

	if err := c.export(deps, result.Records); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if metrics != nil {
		metrics.ObserveRun(result, time.Now())
		if err := metrics.WriteTextfile(c.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func (c *ScrapeCmd) export(deps *Dependencies, records []*bizscan.BusinessRecord) error {
	switch c.Format {
	case "jsonl":
		return fs.NewJSONLExporter(c.Output, fs.WithStdout(deps.Stdout)).Export(deps.Ctx, records)
	case "sqlite":
		path := c.Output
		if path == "" || path == fs.StdoutPath {
			path = deps.DBPath
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer db.Close()

		store := sqlite.NewRecordStore(db)
		if err := store.Export(deps.Ctx, records); err != nil {
			return err
		}
		deps.Logger.Info("stored run", "run_id", store.LastRunID(), "db", path)
		return nil
	default:
		return fs.NewJSONExporter(c.Output, fs.WithStdout(deps.Stdout)).Export(deps.Ctx, records)
	}
}

// dedupeCapacity sizes the bloom filter for the most records a run can see.
func dedupeCapacity(inputs, perQuery int) uint {
	n := inputs * max(perQuery, 1)
	return uint(max(n, 1000))
}
