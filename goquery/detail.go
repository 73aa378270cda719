package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizscan"
)

// Ensure DetailExtractor implements bizscan.DetailExtractor at compile time.
var _ bizscan.DetailExtractor = (*DetailExtractor)(nil)

// textStrategy is one way of locating a field on a page. It returns "" when
// the page does not have what it looks for.
type textStrategy func(doc *goquery.Selection) string

// Field strategies, tried in order until one yields text.
var (
	nameStrategies = []textStrategy{
		firstMatchText("itemprop", nameRE),
		firstElementText("h1"),
	}
	addressStrategies = []textStrategy{
		firstMatchText("data-testid", addressRE),
		anyMatchText("aria-label", addressRE),
		firstElementText("address"),
	}
	phoneStrategies = phoneTextStrategies()
)

// DetailExtractor extracts a full record from a business detail page.
type DetailExtractor struct{}

// NewDetailExtractor creates a new DetailExtractor.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{}
}

// ExtractDetail extracts the name, address, phone, rating and top review text
// from the page. Each field falls back independently; a field that cannot be
// found is nil.
func (e *DetailExtractor) ExtractDetail(html string, url string) (*bizscan.BusinessRecord, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	record := &bizscan.BusinessRecord{
		BusinessName: firstText(root, nameStrategies),
		Address:      firstText(root, addressStrategies),
		PhoneNumber:  firstText(root, phoneStrategies),
		Rating:       starRating(root),
		URL:          bizscan.OptionalString(url),
	}

	if review := topReview(root); review != nil {
		if record.Rating == nil {
			record.Rating = review.Rating
		}
		record.ReviewText = review.Text
	}

	return record, nil
}

// ExtractReview returns the first review on the page that has text,
// or nil if there is none.
func (e *DetailExtractor) ExtractReview(html string) (*bizscan.Review, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	return topReview(doc.Selection), nil
}

// topReview finds review containers by itemprop, falling back to data-testid
// when the page has no itemprop reviews at all.
func topReview(root *goquery.Selection) *bizscan.Review {
	blocks := findByAttr(root, "itemprop", reviewRE)
	if blocks.Length() == 0 {
		blocks = findByAttr(root, "data-testid", reviewRE)
	}

	var review *bizscan.Review
	blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
		text := visibleText(block)
		if text == "" {
			return true
		}
		review = &bizscan.Review{
			Author: bizscan.OptionalString(visibleText(findByAttr(block, "itemprop", authorRE).First())),
			Rating: starRating(block),
			Text:   bizscan.OptionalString(text),
		}
		return false
	})
	return review
}

// firstText runs strategies in order and returns the first non-empty result.
func firstText(doc *goquery.Selection, strategies []textStrategy) *string {
	for _, strategy := range strategies {
		if text := strategy(doc); text != "" {
			return &text
		}
	}
	return nil
}

// firstMatchText returns the text of the first element whose attr matches.
func firstMatchText(attr string, re *regexp.Regexp) textStrategy {
	return func(doc *goquery.Selection) string {
		return visibleText(findByAttr(doc, attr, re).First())
	}
}

// anyMatchText returns the text of the first element whose attr matches
// and whose text is not empty.
func anyMatchText(attr string, re *regexp.Regexp) textStrategy {
	return func(doc *goquery.Selection) string {
		var text string
		findByAttr(doc, attr, re).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = visibleText(s)
			return text == ""
		})
		return text
	}
}

// firstElementText returns the text of the first element matching selector.
func firstElementText(selector string) textStrategy {
	return func(doc *goquery.Selection) string {
		return visibleText(doc.Find(selector).First())
	}
}

// phoneTextStrategies scans the page text for each phone shape in turn.
func phoneTextStrategies() []textStrategy {
	strategies := make([]textStrategy, 0, len(phoneREs))
	for _, re := range phoneREs {
		strategies = append(strategies, func(doc *goquery.Selection) string {
			return re.FindString(visibleText(doc))
		})
	}
	return strategies
}
