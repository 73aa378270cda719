// Package goquery provides HTML extraction of business records using goquery
// CSS selection. Selection favors semantic markers (aria-label, itemprop,
// data-testid) over presentational class names, which change often.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizscan"
	"golang.org/x/net/html"
)

// Patterns matched against attribute values. All are case-insensitive
// substring matches.
var (
	starRatingRE = regexp.MustCompile(`(?i)star rating`)
	addressRE    = regexp.MustCompile(`(?i)address`)
	nameRE       = regexp.MustCompile(`(?i)name`)
	reviewRE     = regexp.MustCompile(`(?i)review`)
	authorRE     = regexp.MustCompile(`(?i)author`)
)

// phoneREs are tried in order against the page text.
var phoneREs = []*regexp.Regexp{
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`), // (555) 555-1234
	regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),       // 555-555-1234
}

// parseDocument parses html into a goquery document.
// Input without any markup is rejected with EINVALID.
func parseDocument(raw string) (*goquery.Document, error) {
	if !strings.Contains(raw, "<") {
		return nil, bizscan.Errorf(bizscan.EINVALID, "input is not HTML markup")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, bizscan.Errorf(bizscan.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// findByAttr returns descendants of sel whose attr value matches re,
// in document order.
func findByAttr(sel *goquery.Selection, attr string, re *regexp.Regexp) *goquery.Selection {
	return sel.Find("[" + attr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		return re.MatchString(v)
	})
}

// starRating returns the rating from the first descendant of sel labeled
// as a star rating.
func starRating(sel *goquery.Selection) *float64 {
	node := findByAttr(sel, "aria-label", starRatingRE).First()
	if node.Length() == 0 {
		return nil
	}
	label, _ := node.Attr("aria-label")
	return bizscan.ExtractLeadingNumber(label)
}

// visibleText returns the normalized text of sel. Text nodes are joined with
// a space so adjacent inline elements do not run together. Script and style
// contents are not visible and are skipped.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return bizscan.NormalizeText(strings.Join(parts, " "))
}
