package mock

import "github.com/fwojciec/bizscan"

var _ bizscan.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of bizscan.ListingExtractor.
type ListingExtractor struct {
	ExtractListingsFn func(html string, baseURL string, maxResults int) ([]*bizscan.BusinessRecord, error)
}

func (e *ListingExtractor) ExtractListings(html string, baseURL string, maxResults int) ([]*bizscan.BusinessRecord, error) {
	return e.ExtractListingsFn(html, baseURL, maxResults)
}

var _ bizscan.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of bizscan.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailFn func(html string, url string) (*bizscan.BusinessRecord, error)
}

func (e *DetailExtractor) ExtractDetail(html string, url string) (*bizscan.BusinessRecord, error) {
	return e.ExtractDetailFn(html, url)
}
