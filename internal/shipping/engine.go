package shipping

import (
	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// QuoteResult is what the engine hands back to the checkout flow: the ranked
// combination list plus everything the UI needs to explain an empty one.
type QuoteResult struct {
	Combinations       []Combination `json:"combinations"`
	NoOptionsAvailable bool          `json:"no_options_available"`
	UnshippableItemIDs []string      `json:"unshippable_item_ids,omitempty"`
	Explanation        string        `json:"explanation,omitempty"`
}

const coverageGapExplanation = "no shipping option covers every item for this address; try a different postal code"

// ComputeQuote runs the whole pipeline over in-memory snapshots: group items
// by rule, filter groups by destination coverage, price every (group, option)
// pair, assemble single and mixed combinations, and rank them. It is pure;
// callers own fetching and caching of the rule set.
func ComputeQuote(items []CartItem, dest types.Destination, rules []Rule) *QuoteResult {
	normalized := dest.Normalized()

	usable := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active || len(rule.Options) == 0 {
			continue
		}
		usable = append(usable, rule)
	}

	groups, unshippable := groupByRule(items, usable)

	// Unshippable items are excluded from coverage accounting; they are
	// reported separately and block checkout upstream.
	excluded := make(map[string]struct{}, len(unshippable))
	for _, key := range unshippable {
		excluded[key] = struct{}{}
	}
	allKeys := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, skip := excluded[item.Key()]; skip {
			continue
		}
		allKeys[item.Key()] = struct{}{}
	}

	covered := make([]RuleGroup, 0, len(groups))
	for _, group := range groups {
		if ruleApplies(group.Rule, normalized.PostalCode, normalized.State) {
			covered = append(covered, group)
		}
	}

	ranked := rankCombinations(generateCombinations(covered, allKeys))

	noOptions := true
	for _, combo := range ranked {
		if combo.CoversAllProducts {
			noOptions = false
			break
		}
	}

	result := &QuoteResult{
		Combinations:       ranked,
		NoOptionsAvailable: noOptions,
		UnshippableItemIDs: unshippable,
	}
	if noOptions {
		result.Explanation = coverageGapExplanation
	}
	return result
}

// FindCombination locates a combination by id inside a result.
func (r *QuoteResult) FindCombination(id string) (Combination, bool) {
	if r == nil {
		return Combination{}, false
	}
	for _, combo := range r.Combinations {
		if combo.ID == id {
			return combo, true
		}
	}
	return Combination{}, false
}
