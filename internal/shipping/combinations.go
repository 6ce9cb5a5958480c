package shipping

import "fmt"

// generateCombinations builds every candidate shipping combination for the
// cart: one per (rule, option) pair, plus mixed free+paid pairs when no
// single rule covers every item. Partial combinations stay in the output,
// flagged, so the storefront can explain why they are not selectable.
func generateCombinations(groups []RuleGroup, allKeys map[string]struct{}) []Combination {
	combos := make([]Combination, 0, len(groups))

	anyFullCoverage := false
	for _, group := range groups {
		covers := coversAll(group.ItemKeys(), allKeys)
		if covers {
			anyFullCoverage = true
		}
		for _, option := range group.Rule.Options {
			priced := priceGroup(group, option)
			combos = append(combos, singleCombination(priced, covers))
		}
	}

	if !anyFullCoverage {
		combos = append(combos, mixedCombinations(groups, allKeys)...)
	}

	return combos
}

func singleCombination(priced PricedOption, covers bool) Combination {
	rule := priced.Group.Rule
	sel := selectionFromPriced(priced, sortedKeys(priced.Group.ItemKeys()))
	return Combination{
		ID:                fmt.Sprintf("%s:%s", rule.ID, priced.Option.ID),
		Label:             fmt.Sprintf("%s %s", rule.Zone, priced.Option.Carrier),
		TotalCents:        priced.PriceCents,
		FullyFree:         priced.PriceCents == 0,
		CoversAllProducts: covers,
		Mixed:             false,
		Selections:        []Selection{sel},
	}
}

// mixedCombinations pairs a free-shipping group with a paid group when their
// union covers the whole cart. Items claimed by both legs ride the free one;
// the paid leg is re-priced on the items left over.
func mixedCombinations(groups []RuleGroup, allKeys map[string]struct{}) []Combination {
	var free, paid []RuleGroup
	for _, g := range groups {
		if g.Rule.FreeShipping {
			free = append(free, g)
		} else {
			paid = append(paid, g)
		}
	}

	var combos []Combination
	for _, freeGroup := range free {
		if len(freeGroup.Rule.Options) == 0 {
			continue
		}
		freeKeys := freeGroup.ItemKeys()

		for _, paidGroup := range paid {
			residual := residualGroup(paidGroup, freeKeys)
			if len(residual.Items) == 0 {
				continue
			}

			union := make(map[string]struct{}, len(freeKeys)+len(residual.Items))
			for k := range freeKeys {
				union[k] = struct{}{}
			}
			for _, item := range residual.Items {
				union[item.Key()] = struct{}{}
			}
			if !coversAll(union, allKeys) {
				continue
			}

			freeLeg := priceGroup(freeGroup, freeGroup.Rule.Options[0])
			for _, option := range paidGroup.Rule.Options {
				paidLeg := priceGroup(residual, option)
				combos = append(combos, mixedCombination(freeLeg, paidLeg))
			}
		}
	}
	return combos
}

func mixedCombination(freeLeg, paidLeg PricedOption) Combination {
	freeRule := freeLeg.Group.Rule
	paidRule := paidLeg.Group.Rule

	selections := []Selection{
		selectionFromPriced(freeLeg, sortedKeys(freeLeg.Group.ItemKeys())),
		selectionFromPriced(paidLeg, sortedKeys(paidLeg.Group.ItemKeys())),
	}

	return Combination{
		ID: fmt.Sprintf("%s:%s+%s:%s",
			freeRule.ID, freeLeg.Option.ID, paidRule.ID, paidLeg.Option.ID),
		Label: fmt.Sprintf("%s + %s %s",
			freeRule.Zone, paidRule.Zone, paidLeg.Option.Carrier),
		TotalCents:        paidLeg.PriceCents,
		FullyFree:         paidLeg.PriceCents == 0,
		CoversAllProducts: true,
		Mixed:             true,
		Selections:        selections,
	}
}

// residualGroup strips the items already claimed by the free leg.
func residualGroup(group RuleGroup, claimed map[string]struct{}) RuleGroup {
	remaining := make([]CartItem, 0, len(group.Items))
	for _, item := range group.Items {
		if _, taken := claimed[item.Key()]; taken {
			continue
		}
		remaining = append(remaining, item)
	}
	return RuleGroup{Rule: group.Rule, Items: remaining}
}

func selectionFromPriced(priced PricedOption, itemKeys []string) Selection {
	return Selection{
		RuleID:       priced.Group.Rule.ID,
		Zone:         priced.Group.Rule.Zone,
		Option:       priced.Option,
		PriceCents:   priced.PriceCents,
		FreeReason:   priced.FreeReason,
		LimitWarning: priced.LimitReason,
		ItemKeys:     itemKeys,
	}
}

func coversAll(keys, all map[string]struct{}) bool {
	if len(all) == 0 {
		return false
	}
	for k := range all {
		if _, ok := keys[k]; !ok {
			return false
		}
	}
	return true
}
