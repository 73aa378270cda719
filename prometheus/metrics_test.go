package prometheus_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/crawl"
	"github.com/fwojciec/bizscan/mock"
	bizprom "github.com/fwojciec/bizscan/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsGateway_Get(t *testing.T) {
	t.Parallel()

	t.Run("counts outcomes and attempts", func(t *testing.T) {
		t.Parallel()

		metrics := bizprom.NewMetrics()
		inner := &mock.FetchGateway{
			GetFn: func(ctx context.Context, url string) bizscan.FetchResult {
				if url == "https://www.yelp.com/biz/broken" {
					return bizscan.FetchResult{URL: url, Err: errors.New("HTTP 500"), Attempts: 3}
				}
				return bizscan.FetchResult{URL: url, Content: "<p>ok</p>", Attempts: 1}
			},
		}
		gw := bizprom.NewMetricsGateway(inner, metrics)

		ok := gw.Get(context.Background(), "https://www.yelp.com/biz/tasty")
		failed := gw.Get(context.Background(), "https://www.yelp.com/biz/broken")

		assert.True(t, ok.OK())
		assert.EqualError(t, failed.Err, "HTTP 500")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("ok")))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("error")))
		assert.Equal(t, 4.0, testutil.ToFloat64(metrics.FetchAttempts))
	})

	t.Run("empty content counts as error", func(t *testing.T) {
		t.Parallel()

		metrics := bizprom.NewMetrics()
		inner := &mock.FetchGateway{
			GetFn: func(ctx context.Context, url string) bizscan.FetchResult {
				return bizscan.FetchResult{URL: url, Attempts: 1}
			},
		}

		bizprom.NewMetricsGateway(inner, metrics).Get(context.Background(), "https://www.yelp.com/biz/tasty")

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("error")))
	})
}

func TestMetrics_ObserveRun(t *testing.T) {
	t.Parallel()

	metrics := bizprom.NewMetrics()
	finished := time.Unix(1700000000, 0)

	metrics.ObserveRun(&crawl.RunResult{
		Records:       []*bizscan.BusinessRecord{{}, {}, {}},
		Processed:     2,
		Skipped:       1,
		Duplicates:    4,
		DetailFetches: 5,
	}, finished)
	metrics.ObserveRun(nil, finished)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.RecordsEmitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.InputsProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InputsSkipped))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Duplicates))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.DetailFetches))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(metrics.LastRunSeconds))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	metrics := bizprom.NewMetrics()
	metrics.InputsSkipped.Add(2)
	path := filepath.Join(t.TempDir(), "bizscan.prom")

	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bizscan_inputs_skipped_total 2")
	assert.Contains(t, string(data), "# TYPE bizscan_records_emitted_total counter")
}
