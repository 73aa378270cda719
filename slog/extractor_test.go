package slog_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fwojciec/bizscan"
	"github.com/fwojciec/bizscan/mock"
	bizslog "github.com/fwojciec/bizscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingListingExtractor(t *testing.T) {
	t.Parallel()

	t.Run("logs record count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ListingExtractor{
			ExtractListingsFn: func(html, baseURL string, maxResults int) ([]*bizscan.BusinessRecord, error) {
				return []*bizscan.BusinessRecord{{}, {}}, nil
			},
		}

		ext := bizslog.NewLoggingListingExtractor(inner, debugLogger(&buf))
		records, err := ext.ExtractListings("<html></html>", "https://www.yelp.com", 5)

		require.NoError(t, err)
		assert.Len(t, records, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=\"extract listings\"")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "max=5")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ListingExtractor{
			ExtractListingsFn: func(html, baseURL string, maxResults int) ([]*bizscan.BusinessRecord, error) {
				return nil, bizscan.Errorf(bizscan.EINVALID, "not markup")
			},
		}

		ext := bizslog.NewLoggingListingExtractor(inner, debugLogger(&buf))
		_, err := ext.ExtractListings("plain", "https://www.yelp.com", 5)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=")
	})
}

func TestLoggingDetailExtractor(t *testing.T) {
	t.Parallel()

	t.Run("logs which fields were found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DetailExtractor{
			ExtractDetailFn: func(html, url string) (*bizscan.BusinessRecord, error) {
				return &bizscan.BusinessRecord{
					BusinessName: bizscan.OptionalString("Tasty Place"),
					Rating:       bizscan.Float(4.5),
				}, nil
			},
		}

		ext := bizslog.NewLoggingDetailExtractor(inner, debugLogger(&buf))
		record, err := ext.ExtractDetail("<h1>Tasty Place</h1>", "https://www.yelp.com/biz/tasty")

		require.NoError(t, err)
		assert.Equal(t, "Tasty Place", *record.BusinessName)
		output := buf.String()
		assert.Contains(t, output, "name=true")
		assert.Contains(t, output, "phone=false")
		assert.Contains(t, output, "rating=true")
	})

	t.Run("logs error without field flags", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DetailExtractor{
			ExtractDetailFn: func(html, url string) (*bizscan.BusinessRecord, error) {
				return nil, errors.New("boom")
			},
		}

		ext := bizslog.NewLoggingDetailExtractor(inner, debugLogger(&buf))
		_, err := ext.ExtractDetail("x", "https://www.yelp.com/biz/tasty")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=boom")
		assert.NotContains(t, output, "name=")
	})
}
