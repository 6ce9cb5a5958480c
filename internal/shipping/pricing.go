package shipping

import (
	"fmt"
	"math"
)

// Free-shipping reasons, recorded for storefront display.
const (
	FreeReasonRule     = "rule grants free shipping"
	FreeReasonSubtotal = "subtotal reaches free-shipping minimum"
	FreeReasonUnits    = "item count reaches free-shipping minimum"
)

// priceGroup computes the delivery price of one rule group under one of the
// rule's service options. Package limits never block pricing; they only
// annotate the result.
func priceGroup(group RuleGroup, option ServiceOption) PricedOption {
	rule := group.Rule
	itemCount, totalWeight, subtotalCents := groupTotals(group)

	freeReason := freeShippingReason(rule, itemCount, subtotalCents)

	price := 0
	if freeReason == "" {
		price = option.PriceCents

		// The first unit is included in the base price.
		if itemCount > 1 && rule.ExtraUnitCents != nil {
			price += (itemCount - 1) * *rule.ExtraUnitCents
		}

		if rule.ExtraKgCents != nil {
			included := 0.0
			if rule.BaseIncludedKg != nil && *rule.BaseIncludedKg > 0 {
				included = *rule.BaseIncludedKg
			}
			if over := totalWeight - included; over > 0 {
				price += int(math.Round(over * float64(*rule.ExtraKgCents)))
			}
		}

		if price < 0 {
			price = 0
		}
	}

	exceeds, reason := packageLimitBreach(rule, itemCount, totalWeight)

	return PricedOption{
		Group:         group,
		Option:        option,
		PriceCents:    price,
		FreeReason:    freeReason,
		ExceedsLimits: exceeds,
		LimitReason:   reason,
	}
}

// freeShippingReason evaluates the free conditions in priority order and
// returns the first satisfied one, or empty when shipping is paid.
func freeShippingReason(rule Rule, itemCount, subtotalCents int) string {
	if rule.FreeShipping {
		return FreeReasonRule
	}
	if rule.FreeMinSubtotalCents != nil && subtotalCents >= *rule.FreeMinSubtotalCents {
		return FreeReasonSubtotal
	}
	if rule.FreeMinUnits != nil && itemCount >= *rule.FreeMinUnits {
		return FreeReasonUnits
	}
	return ""
}

func groupTotals(group RuleGroup) (itemCount int, totalWeight float64, subtotalCents int) {
	for _, item := range group.Items {
		qty := item.Quantity()
		itemCount += qty
		totalWeight += item.Product.Weight() * float64(qty)
		subtotalCents += item.Product.PriceCents * qty
	}
	return itemCount, totalWeight, subtotalCents
}

func packageLimitBreach(rule Rule, itemCount int, totalWeight float64) (bool, string) {
	if rule.MaxUnitsPerPackage != nil && itemCount > *rule.MaxUnitsPerPackage {
		return true, fmt.Sprintf("cart exceeds the %d-unit package limit", *rule.MaxUnitsPerPackage)
	}
	if rule.MaxWeightKg != nil && totalWeight > *rule.MaxWeightKg {
		return true, fmt.Sprintf("cart exceeds the %.1f kg package limit", *rule.MaxWeightKg)
	}
	return false, ""
}
