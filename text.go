package bizscan

import (
	"regexp"
	"strconv"
	"strings"
)

// leadingNumberRE matches the first decimal number in a label such as
// "4.5 star rating".
var leadingNumberRE = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// NormalizeText collapses every run of whitespace to a single space and trims
// the result. Empty input yields an empty string.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Join(strings.Fields(raw), " ")
}

// ExtractLeadingNumber returns the first decimal number found in label,
// or nil if there is none or it cannot be parsed.
func ExtractLeadingNumber(label string) *float64 {
	if label == "" {
		return nil
	}
	m := leadingNumberRE.FindString(label)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}
