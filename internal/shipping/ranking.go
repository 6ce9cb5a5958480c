package shipping

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

// worstDeliveryDays is used when an option's delivery estimate carries no
// parseable day count.
const worstDeliveryDays = math.MaxInt32

var dayCountRe = regexp.MustCompile(`\d+`)

// rankCombinations stable-sorts combinations by descending preference and
// marks the best fully-covering one as recommended. The comparator applies
// each criterion only when every earlier one ties, so ranking stays
// deterministic across calls and input orders.
func rankCombinations(combos []Combination) []Combination {
	ranked := make([]Combination, len(combos))
	copy(ranked, combos)

	sort.SliceStable(ranked, func(i, j int) bool {
		return preferCombination(ranked[i], ranked[j])
	})

	for i := range ranked {
		ranked[i].Recommended = i == 0 && ranked[i].CoversAllProducts
	}
	return ranked
}

func preferCombination(a, b Combination) bool {
	if a.CoversAllProducts != b.CoversAllProducts {
		return a.CoversAllProducts
	}

	aFree, bFree := a.TotalCents == 0, b.TotalCents == 0
	if aFree != bFree {
		return aFree
	}

	if a.TotalCents != b.TotalCents {
		return a.TotalCents < b.TotalCents
	}

	if a.Mixed != b.Mixed {
		return !a.Mixed
	}

	aLimits, bLimits := a.exceedsLimits(), b.exceedsLimits()
	if aLimits != bLimits {
		return !aLimits
	}

	aDays, bDays := maxDeliveryDays(a), maxDeliveryDays(b)
	if aDays != bDays {
		return aDays < bDays
	}

	return a.Label < b.Label
}

// maxDeliveryDays takes the slowest leg's upper-bound day count.
func maxDeliveryDays(c Combination) int {
	worst := 0
	for _, sel := range c.Selections {
		days := estimateUpperBoundDays(sel.Option.DeliveryEstimate)
		if days > worst {
			worst = days
		}
	}
	if worst == 0 {
		return worstDeliveryDays
	}
	return worst
}

// estimateUpperBoundDays parses the upper bound of a free-form delivery
// window such as "3 a 5 días" or "2-4". Unparseable estimates rank as
// worst case.
func estimateUpperBoundDays(estimate string) int {
	matches := dayCountRe.FindAllString(estimate, -1)
	if len(matches) == 0 {
		return worstDeliveryDays
	}
	upper := 0
	for _, m := range matches {
		if n, err := strconv.Atoi(m); err == nil && n > upper {
			upper = n
		}
	}
	if upper == 0 {
		return worstDeliveryDays
	}
	return upper
}
