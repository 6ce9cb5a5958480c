package shipping

import (
	"sort"

	"github.com/google/uuid"

	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// defaultWeightKg is assumed when a catalog document never recorded a weight.
const defaultWeightKg = 1.0

// Product is the catalog snapshot the engine reads. RuleIDs is already
// normalized from the legacy reference shapes (see normalizeRuleRefs).
type Product struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	PriceCents int       `json:"price_cents"`
	WeightKg   *float64  `json:"weight_kg,omitempty"`
	RuleIDs    []string  `json:"rule_ids"`
}

// Weight returns the effective weight in kg.
func (p Product) Weight() float64 {
	if p.WeightKg == nil || *p.WeightKg < 0 {
		return defaultWeightKg
	}
	return *p.WeightKg
}

// CartItem pairs a product snapshot with a quantity.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Qty       int       `json:"qty"`
	Product   Product   `json:"product"`
}

// Key identifies the item inside one computation.
func (c CartItem) Key() string {
	return c.ProductID.String()
}

// Quantity clamps non-positive quantities to one unit.
func (c CartItem) Quantity() int {
	if c.Qty <= 0 {
		return 1
	}
	return c.Qty
}

// ServiceOption is one carrier tier offered under a rule.
type ServiceOption struct {
	ID               string `json:"id"`
	Carrier          string `json:"carrier"`
	PriceCents       int    `json:"price_cents"`
	DeliveryEstimate string `json:"delivery_estimate"`
}

// Rule is the engine-facing view of a shipping rule. Optional numeric fields
// stay pointers; absence means the surcharge or threshold is not configured.
type Rule struct {
	ID           string              `json:"id"`
	Zone         string              `json:"zone"`
	Active       bool                `json:"active"`
	Nationwide   bool                `json:"nationwide"`
	PostalCodes  []string            `json:"postal_codes,omitempty"`
	PostalRanges []types.PostalRange `json:"postal_ranges,omitempty"`

	FreeShipping         bool     `json:"free_shipping"`
	FreeMinSubtotalCents *int     `json:"free_min_subtotal_cents,omitempty"`
	FreeMinUnits         *int     `json:"free_min_units,omitempty"`
	ExtraUnitCents       *int     `json:"extra_unit_cents,omitempty"`
	ExtraKgCents         *int     `json:"extra_kg_cents,omitempty"`
	BaseIncludedKg       *float64 `json:"base_included_kg,omitempty"`
	MaxUnitsPerPackage   *int     `json:"max_units_per_package,omitempty"`
	MaxWeightKg          *float64 `json:"max_weight_kg,omitempty"`

	Options []ServiceOption `json:"options"`
}

// RuleGroup is the subset of cart items assigned to one rule. Derived per
// computation, never persisted.
type RuleGroup struct {
	Rule  Rule
	Items []CartItem
}

// ItemKeys returns the set of item keys in the group.
func (g RuleGroup) ItemKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(g.Items))
	for _, item := range g.Items {
		keys[item.Key()] = struct{}{}
	}
	return keys
}

// PricedOption is a rule group priced under one of its rule's service options.
type PricedOption struct {
	Group         RuleGroup
	Option        ServiceOption
	PriceCents    int
	FreeReason    string
	ExceedsLimits bool
	LimitReason   string
}

// Selection is one leg of a combination: a priced option plus the items it
// actually ships.
type Selection struct {
	RuleID       string        `json:"rule_id"`
	Zone         string        `json:"zone"`
	Option       ServiceOption `json:"option"`
	PriceCents   int           `json:"price_cents"`
	FreeReason   string        `json:"free_reason,omitempty"`
	LimitWarning string        `json:"limit_warning,omitempty"`
	ItemKeys     []string      `json:"item_ids"`
}

// Combination is one purchasable shipping choice for the whole cart, or a
// partial choice kept visible so the storefront can explain why it is
// disabled.
type Combination struct {
	ID                string      `json:"id"`
	Label             string      `json:"label"`
	TotalCents        int         `json:"total_cents"`
	FullyFree         bool        `json:"fully_free"`
	CoversAllProducts bool        `json:"covers_all_products"`
	Mixed             bool        `json:"is_mixed"`
	Recommended       bool        `json:"recommended"`
	Selections        []Selection `json:"selections"`
}

func (c Combination) exceedsLimits() bool {
	for _, sel := range c.Selections {
		if sel.LimitWarning != "" {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
