package shipping

import (
	"github.com/rodrigocantu/tienda-backend/pkg/db/models"
)

// RuleFromModel maps a persisted rule row into the engine snapshot.
func RuleFromModel(m models.ShippingRule) Rule {
	rule := Rule{
		ID:                   m.ID.String(),
		Zone:                 m.Zone,
		Active:               m.IsActive,
		Nationwide:           m.Nationwide,
		PostalCodes:          []string(m.PostalCodes),
		PostalRanges:         m.PostalRanges,
		FreeShipping:         m.FreeShipping,
		FreeMinSubtotalCents: m.FreeMinSubtotalCents,
		FreeMinUnits:         m.FreeMinUnits,
		ExtraUnitCents:       m.ExtraUnitCents,
		ExtraKgCents:         m.ExtraKgCents,
		BaseIncludedKg:       m.BaseIncludedKg,
		MaxUnitsPerPackage:   m.MaxUnitsPerPackage,
		MaxWeightKg:          m.MaxWeightKg,
	}
	rule.Options = make([]ServiceOption, 0, len(m.Options))
	for _, opt := range m.Options {
		rule.Options = append(rule.Options, ServiceOption{
			ID:               opt.ID.String(),
			Carrier:          opt.Carrier,
			PriceCents:       opt.PriceCents,
			DeliveryEstimate: opt.DeliveryEstimate,
		})
	}
	return rule
}

// RulesFromModels maps a result set preserving order.
func RulesFromModels(rows []models.ShippingRule) []Rule {
	rules := make([]Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, RuleFromModel(row))
	}
	return rules
}

// ProductFromModel builds the engine snapshot, normalizing the legacy rule
// reference shapes into a flat id list.
func ProductFromModel(m *models.Product) Product {
	return Product{
		ID:         m.ID,
		Title:      m.Title,
		PriceCents: m.PriceCents,
		WeightKg:   m.WeightKg,
		RuleIDs:    normalizeRuleRefs(m.ShippingRuleRefs.Raw),
	}
}
