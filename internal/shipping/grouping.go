package shipping

import "strings"

// normalizeRuleRefs flattens the three historical reference shapes found on
// catalog documents into a deduplicated id list: a single id string, a list
// of id strings, or a list of {"id": ...} reference objects.
func normalizeRuleRefs(raw any) []string {
	var ids []string

	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		ids = append(ids, v)
	case []string:
		ids = append(ids, v...)
	case map[string]any:
		if id := refObjectID(v); id != "" {
			ids = append(ids, id)
		}
	case []any:
		for _, entry := range v {
			switch e := entry.(type) {
			case string:
				ids = append(ids, e)
			case map[string]any:
				if id := refObjectID(e); id != "" {
					ids = append(ids, id)
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func refObjectID(obj map[string]any) string {
	for _, key := range []string{"id", "rule_id", "_id"} {
		if val, ok := obj[key].(string); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// groupByRule partitions cart items into one group per rule the item's
// product declares. An item may land in several groups; overlap is resolved
// later when combinations are assembled. Items whose products reference no
// rule present in the rule set are returned as unshippable keys.
func groupByRule(items []CartItem, rules []Rule) ([]RuleGroup, []string) {
	byRule := make(map[string][]CartItem, len(rules))
	known := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		known[rule.ID] = struct{}{}
	}

	var unshippable []string
	for _, item := range items {
		assigned := false
		for _, ruleID := range item.Product.RuleIDs {
			if _, ok := known[ruleID]; !ok {
				continue
			}
			byRule[ruleID] = append(byRule[ruleID], item)
			assigned = true
		}
		if !assigned {
			unshippable = append(unshippable, item.Key())
		}
	}

	// Groups follow rule-set order so repeated computations stay stable.
	groups := make([]RuleGroup, 0, len(byRule))
	for _, rule := range rules {
		members := byRule[rule.ID]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, RuleGroup{Rule: rule, Items: members})
	}
	return groups, unshippable
}
