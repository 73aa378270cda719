// Package prometheus records scrape run metrics with the Prometheus client
// and writes them in the node_exporter textfile format.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bizscan"

// Metrics holds the collectors for one scrape run.
type Metrics struct {
	Registry *prometheus.Registry

	Fetches         *prometheus.CounterVec
	FetchAttempts   prometheus.Counter
	FetchDuration   prometheus.Histogram
	InputsProcessed prometheus.Counter
	InputsSkipped   prometheus.Counter
	Duplicates      prometheus.Counter
	DetailFetches   prometheus.Counter
	RecordsEmitted  prometheus.Counter
	LastRunSeconds  prometheus.Gauge
}

// NewMetrics creates Metrics registered on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "fetches_total", Help: "Gateway fetches by outcome."},
			[]string{"outcome"}, // outcome: ok|error
		),
		FetchAttempts: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "fetch_attempts_total", Help: "Transport attempts including retries."},
		),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "fetch_duration_seconds",
			Help:    "Gateway fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		InputsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "inputs_processed_total", Help: "Inputs that produced records."},
		),
		InputsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "inputs_skipped_total", Help: "Inputs skipped after a fetch or parse failure."},
		),
		Duplicates: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "duplicates_total", Help: "Records dropped as cross-query duplicates."},
		),
		DetailFetches: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "detail_fetches_total", Help: "Detail page fetches attempted for enrichment."},
		),
		RecordsEmitted: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "records_emitted_total", Help: "Records handed to the exporter."},
		),
		LastRunSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "last_run_timestamp_seconds", Help: "Unix time the run finished."},
		),
	}
	m.Registry.MustRegister(
		m.Fetches, m.FetchAttempts, m.FetchDuration,
		m.InputsProcessed, m.InputsSkipped, m.Duplicates,
		m.DetailFetches, m.RecordsEmitted, m.LastRunSeconds,
	)
	return m
}

// ObserveFetch records one gateway result.
func (m *Metrics) ObserveFetch(result bizscan.FetchResult, dur time.Duration) {
	m.Fetches.WithLabelValues(outcome(result)).Inc()
	m.FetchAttempts.Add(float64(result.Attempts))
	m.FetchDuration.Observe(dur.Seconds())
}

// ObserveRun records the totals of a finished run.
func (m *Metrics) ObserveRun(result *crawl.RunResult, finished time.Time) {
	if result == nil {
		return
	}
	m.InputsProcessed.Add(float64(result.Processed))
	m.InputsSkipped.Add(float64(result.Skipped))
	m.Duplicates.Add(float64(result.Duplicates))
	m.DetailFetches.Add(float64(result.DetailFetches))
	m.RecordsEmitted.Add(float64(len(result.Records)))
	m.LastRunSeconds.Set(float64(finished.Unix()))
}

// WriteTextfile writes all metrics to path for the node_exporter textfile
// collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func outcome(result bizscan.FetchResult) string {
	if result.OK() {
		return "ok"
	}
	return "error"
}

// Ensure MetricsGateway implements bizscan.FetchGateway.
var _ bizscan.FetchGateway = (*MetricsGateway)(nil)

// MetricsGateway wraps a FetchGateway and observes every result.
type MetricsGateway struct {
	next    bizscan.FetchGateway
	metrics *Metrics
}

// NewMetricsGateway creates a new MetricsGateway.
func NewMetricsGateway(next bizscan.FetchGateway, metrics *Metrics) *MetricsGateway {
	return &MetricsGateway{next: next, metrics: metrics}
}

// Get delegates to the wrapped gateway and records the outcome.
func (g *MetricsGateway) Get(ctx context.Context, url string) (result bizscan.FetchResult) {
	defer func(begin time.Time) {
		g.metrics.ObserveFetch(result, time.Since(begin))
	}(time.Now())
	return g.next.Get(ctx, url)
}
