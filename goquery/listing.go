package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizscan"
)

// maxAncestorHops bounds how far above a business link the rating search
// climbs.
const maxAncestorHops = 4

// Ensure ListingExtractor implements bizscan.ListingExtractor at compile time.
var _ bizscan.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor extracts summary records from search results pages.
type ListingExtractor struct {
	pathPrefix string
}

// ListingOption configures a ListingExtractor.
type ListingOption func(*ListingExtractor)

// WithBusinessPathPrefix sets the path prefix that identifies business pages.
// Defaults to bizscan.DefaultBusinessPathPrefix ("/biz/").
func WithBusinessPathPrefix(prefix string) ListingOption {
	return func(e *ListingExtractor) {
		e.pathPrefix = prefix
	}
}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor(opts ...ListingOption) *ListingExtractor {
	e := &ListingExtractor{
		pathPrefix: bizscan.DefaultBusinessPathPrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractListings returns one record per distinct business link in document
// order. The name comes from the link text and the rating from the nearest
// star rating label within a few ancestor levels of the link.
func (e *ListingExtractor) ExtractListings(html string, baseURL string, maxResults int) ([]*bizscan.BusinessRecord, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bizscan.Errorf(bizscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	records := []*bizscan.BusinessRecord{}

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		resolved := e.canonicalURL(base, href)
		if resolved == "" || seen[resolved] {
			return true
		}

		name := visibleText(link)
		if name == "" {
			return true
		}

		seen[resolved] = true
		records = append(records, &bizscan.BusinessRecord{
			BusinessName: bizscan.OptionalString(name),
			Rating:       ratingNear(link),
			URL:          bizscan.OptionalString(resolved),
		})

		return maxResults <= 0 || len(records) < maxResults
	})

	return records, nil
}

// canonicalURL returns the absolute business page URL for href with query
// and fragment stripped, or "" if href does not point at a business page on
// the base host.
func (e *ListingExtractor) canonicalURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil || ref.Path == "" {
		return ""
	}
	if ref.Host != "" && ref.Host != base.Host {
		return ""
	}
	if !strings.HasPrefix(ref.Path, e.pathPrefix) {
		return ""
	}

	ref.RawQuery = ""
	ref.ForceQuery = false
	ref.Fragment = ""
	ref.RawFragment = ""
	return base.ResolveReference(ref).String()
}

// ratingNear walks up from link and returns the first star rating found in
// an ancestor's subtree.
func ratingNear(link *goquery.Selection) *float64 {
	current := link
	for hop := 0; hop < maxAncestorHops; hop++ {
		current = current.Parent()
		if current.Length() == 0 {
			return nil
		}
		if rating := starRating(current); rating != nil {
			return rating
		}
	}
	return nil
}
