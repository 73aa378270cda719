package bizscan

// ListingExtractor turns a search results page into summary records.
type ListingExtractor interface {
	// ExtractListings returns at most maxResults records in document order,
	// deduplicated by canonical URL. A maxResults of zero or less means no limit.
	// Returns EINVALID only when html is not markup at all.
	ExtractListings(html string, baseURL string, maxResults int) ([]*BusinessRecord, error)
}

// DetailExtractor turns a business detail page into a record.
type DetailExtractor interface {
	// ExtractDetail returns the fields it could find; missing fields are nil.
	// The record's URL is set to url. Returns EINVALID only when html is not
	// markup at all.
	ExtractDetail(html string, url string) (*BusinessRecord, error)
}
