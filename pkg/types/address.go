package types

import "strings"

// Address is the shipping destination captured on an order. Stored as a
// jsonb column via the GORM json serializer.
type Address struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	Region     string  `json:"region,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country"`
}

// HasRequiredFields reports whether line1, city and country are all present.
func (a Address) HasRequiredFields() bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Country) != ""
}
