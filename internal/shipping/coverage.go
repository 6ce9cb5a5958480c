package shipping

import (
	"strings"

	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// NationwideMarker is the sentinel the legacy storefront stored inside a
// rule's postal-code list to mean "ships anywhere".
const NationwideMarker = "nacional"

const nationwideZone = "Nacional"

// ruleApplies decides whether a rule covers the destination. The checks run
// in order and the first match wins; an empty postal code never matches.
// The state field is accepted for parity with the caller's address but does
// not participate in coverage today.
func ruleApplies(rule Rule, postalCode, state string) bool {
	_ = state

	code := types.NormalizePostalCode(postalCode)
	if code == "" {
		return false
	}

	explicit := explicitPostalCodes(rule)

	if rule.Nationwide || hasNationwideMarker(rule.PostalCodes) {
		return true
	}
	if strings.EqualFold(rule.Zone, nationwideZone) && len(explicit) == 0 && len(rule.PostalRanges) == 0 {
		return true
	}

	if len(explicit) > 0 {
		for _, candidate := range explicit {
			if candidate == code {
				return true
			}
		}
		return false
	}

	if len(rule.PostalRanges) > 0 {
		for _, r := range rule.PostalRanges {
			normalized := types.PostalRange{
				From: types.NormalizePostalCode(r.From),
				To:   types.NormalizePostalCode(r.To),
			}
			if normalized.Contains(code) {
				return true
			}
		}
		return false
	}

	// A free-shipping rule with no coverage spec at all ships anywhere.
	if rule.FreeShipping {
		return true
	}

	return false
}

func hasNationwideMarker(codes []string) bool {
	for _, c := range codes {
		if strings.EqualFold(strings.TrimSpace(c), NationwideMarker) {
			return true
		}
	}
	return false
}

// explicitPostalCodes normalizes the stored code list and strips the
// nationwide marker.
func explicitPostalCodes(rule Rule) []string {
	if len(rule.PostalCodes) == 0 {
		return nil
	}
	out := make([]string, 0, len(rule.PostalCodes))
	for _, raw := range rule.PostalCodes {
		if strings.EqualFold(strings.TrimSpace(raw), NationwideMarker) {
			continue
		}
		code := types.NormalizePostalCode(raw)
		if code == "" {
			continue
		}
		out = append(out, code)
	}
	return out
}
