package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// PostalRange is a closed [From, To] interval of zero-padded postal codes.
type PostalRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Contains reports membership using plain string comparison; callers must
// normalize the code first (see NormalizePostalCode).
func (r PostalRange) Contains(code string) bool {
	if code == "" || r.From == "" || r.To == "" {
		return false
	}
	return code >= r.From && code <= r.To
}

// PostalCodeList persists explicit postal codes as a postgres text[] column.
// Other dialects (sqlite in tests) fall back to the pq array literal in a
// plain text column.
type PostalCodeList pq.StringArray

// GormDataType returns the generic column type.
func (PostalCodeList) GormDataType() string {
	return "text[]"
}

// GormDBDataType picks the column type per dialect.
func (PostalCodeList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Value serializes via the pq array literal.
func (l PostalCodeList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return pq.StringArray(l).Value()
}

// Scan parses the pq array literal.
func (l *PostalCodeList) Scan(value interface{}) error {
	return (*pq.StringArray)(l).Scan(value)
}

// PostalRanges persists the range list as JSONB.
type PostalRanges []PostalRange

// Value serializes the ranges to JSON.
func (p PostalRanges) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan decodes JSONB into the range list.
func (p *PostalRanges) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded PostalRanges
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*p = decoded
	return nil
}

// RuleRefs stores the product's shipping-rule references exactly as written
// by the legacy storefront: a single id string, a list of id strings, or a
// list of {"id": ...} objects. The engine normalizes the shape at its
// boundary; the column keeps whatever the document originally held.
type RuleRefs struct {
	Raw any
}

// Value serializes the raw reference value to JSON.
func (r RuleRefs) Value() (driver.Value, error) {
	if r.Raw == nil {
		return nil, nil
	}
	return json.Marshal(r.Raw)
}

// Scan decodes JSONB into the raw reference value.
func (r *RuleRefs) Scan(value interface{}) error {
	if value == nil {
		r.Raw = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &r.Raw)
}

// MarshalJSON round-trips the raw value.
func (r RuleRefs) MarshalJSON() ([]byte, error) {
	if r.Raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Raw)
}

// UnmarshalJSON round-trips the raw value.
func (r *RuleRefs) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Raw)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
