package bizscan

// Review is a single review found on a business detail page.
type Review struct {
	Author *string  `json:"author"`
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
}

// BusinessRecord is a business extracted from a listing or detail page.
// Nil fields are values the extractors could not find.
type BusinessRecord struct {
	BusinessName *string  `json:"businessName"`
	Address      *string  `json:"address"`
	PhoneNumber  *string  `json:"phoneNumber"`
	Rating       *float64 `json:"rating"`
	ReviewText   *string  `json:"reviewText"`
	URL          *string  `json:"url"`
}

// HasURL reports whether the record points at a detail page.
func (r *BusinessRecord) HasURL() bool {
	return r != nil && r.URL != nil && *r.URL != ""
}

// Clone returns a copy of the record that shares no pointers with r.
func (r *BusinessRecord) Clone() *BusinessRecord {
	if r == nil {
		return nil
	}
	return &BusinessRecord{
		BusinessName: cloneString(r.BusinessName),
		Address:      cloneString(r.Address),
		PhoneNumber:  cloneString(r.PhoneNumber),
		Rating:       cloneFloat(r.Rating),
		ReviewText:   cloneString(r.ReviewText),
		URL:          cloneString(r.URL),
	}
}

// Overlay returns a new record holding r's fields with every non-nil field
// of detail laid over them. The URL always comes from r.
func (r *BusinessRecord) Overlay(detail *BusinessRecord) *BusinessRecord {
	merged := r.Clone()
	if merged == nil {
		merged = &BusinessRecord{}
	}
	if detail == nil {
		return merged
	}
	if detail.BusinessName != nil {
		merged.BusinessName = cloneString(detail.BusinessName)
	}
	if detail.Address != nil {
		merged.Address = cloneString(detail.Address)
	}
	if detail.PhoneNumber != nil {
		merged.PhoneNumber = cloneString(detail.PhoneNumber)
	}
	if detail.Rating != nil {
		merged.Rating = cloneFloat(detail.Rating)
	}
	if detail.ReviewText != nil {
		merged.ReviewText = cloneString(detail.ReviewText)
	}
	return merged
}

// OptionalString returns a pointer to s, or nil when s is empty.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// StringValue returns the value of p, or "" when p is nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
