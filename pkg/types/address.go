package types

import "strings"

// Destination is the slice of a shipping address the rule engine cares about.
// Other address fields (street, references, contact) never influence coverage
// and are kept out of the engine boundary.
type Destination struct {
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
}

// Normalized returns a copy with a trimmed, zero-padded 5-digit postal code
// and an upper-cased state. Numeric codes shorter than five digits are padded
// on the left so range comparisons stay lexicographic.
func (d Destination) Normalized() Destination {
	return Destination{
		PostalCode: NormalizePostalCode(d.PostalCode),
		State:      strings.ToUpper(strings.TrimSpace(d.State)),
	}
}

// NormalizePostalCode trims the code and left-pads all-digit codes to five
// characters. Non-numeric codes are returned trimmed.
func NormalizePostalCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return trimmed
		}
	}
	for len(trimmed) < 5 {
		trimmed = "0" + trimmed
	}
	return trimmed
}
