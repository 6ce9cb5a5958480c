package shipping

import "testing"

func combo(id string, covers bool, total int, mixed bool, estimate string) Combination {
	return Combination{
		ID:                id,
		Label:             id,
		TotalCents:        total,
		FullyFree:         total == 0,
		CoversAllProducts: covers,
		Mixed:             mixed,
		Selections: []Selection{{
			Option:     ServiceOption{DeliveryEstimate: estimate},
			PriceCents: total,
		}},
	}
}

func TestRankFullCoverageBeatsCheaperPartial(t *testing.T) {
	t.Parallel()

	full := combo("full", true, 20000, false, "3 a 5 días")
	partial := combo("partial", false, 0, false, "1 día")

	ranked := rankCombinations([]Combination{partial, full})
	if ranked[0].ID != "full" {
		t.Fatalf("full coverage must outrank a cheaper partial, got %s", ranked[0].ID)
	}
}

func TestRankFreeBeatsPaid(t *testing.T) {
	t.Parallel()

	free := combo("free", true, 0, false, "5 días")
	cheap := combo("cheap", true, 100, false, "1 día")

	ranked := rankCombinations([]Combination{cheap, free})
	if ranked[0].ID != "free" {
		t.Fatalf("free must outrank paid, got %s", ranked[0].ID)
	}
}

func TestRankCheaperFirst(t *testing.T) {
	t.Parallel()

	ranked := rankCombinations([]Combination{
		combo("expensive", true, 25000, false, "1 día"),
		combo("cheap", true, 15000, false, "5 días"),
	})
	if ranked[0].ID != "cheap" {
		t.Fatalf("cheaper total ranks first, got %s", ranked[0].ID)
	}
}

func TestRankSingleBeatsMixedOnPriceTie(t *testing.T) {
	t.Parallel()

	ranked := rankCombinations([]Combination{
		combo("mixed", true, 15000, true, "3 días"),
		combo("single", true, 15000, false, "3 días"),
	})
	if ranked[0].ID != "single" {
		t.Fatalf("non-mixed wins the price tie, got %s", ranked[0].ID)
	}
}

func TestRankLimitBreachRanksLower(t *testing.T) {
	t.Parallel()

	clean := combo("clean", true, 15000, false, "3 días")
	breached := combo("breached", true, 15000, false, "3 días")
	breached.Selections[0].LimitWarning = "cart exceeds the 2-unit package limit"

	ranked := rankCombinations([]Combination{breached, clean})
	if ranked[0].ID != "clean" {
		t.Fatalf("limit breach ranks lower on a tie, got %s", ranked[0].ID)
	}
}

func TestRankFasterDeliveryWinsFinalTies(t *testing.T) {
	t.Parallel()

	ranked := rankCombinations([]Combination{
		combo("slow", true, 15000, false, "5 a 8 días"),
		combo("fast", true, 15000, false, "2 a 3 días"),
	})
	if ranked[0].ID != "fast" {
		t.Fatalf("faster upper bound wins, got %s", ranked[0].ID)
	}

	// Unparseable estimates rank as worst case.
	ranked = rankCombinations([]Combination{
		combo("vague", true, 15000, false, "próximamente"),
		combo("known", true, 15000, false, "10 días"),
	})
	if ranked[0].ID != "known" {
		t.Fatalf("parseable estimate beats an unparseable one, got %s", ranked[0].ID)
	}
}

func TestRankLabelBreaksRemainingTies(t *testing.T) {
	t.Parallel()

	ranked := rankCombinations([]Combination{
		combo("zeta", true, 15000, false, "3 días"),
		combo("alfa", true, 15000, false, "3 días"),
	})
	if ranked[0].ID != "alfa" {
		t.Fatalf("label order breaks remaining ties, got %s", ranked[0].ID)
	}
}

func TestRankDeterministicAcrossInputOrder(t *testing.T) {
	t.Parallel()

	combos := []Combination{
		combo("a", true, 20000, false, "3 días"),
		combo("b", true, 0, false, "5 días"),
		combo("c", false, 1000, false, "1 día"),
		combo("d", true, 20000, true, "3 días"),
	}
	reversed := []Combination{combos[3], combos[2], combos[1], combos[0]}

	first := rankCombinations(combos)
	second := rankCombinations(reversed)
	third := rankCombinations(first)

	for i := range first {
		if first[i].ID != second[i].ID || first[i].ID != third[i].ID {
			t.Fatalf("ranking is order-sensitive at %d: %s / %s / %s",
				i, first[i].ID, second[i].ID, third[i].ID)
		}
	}
}

func TestRankRecommendedOnlyWithFullCoverage(t *testing.T) {
	t.Parallel()

	ranked := rankCombinations([]Combination{
		combo("partial", false, 0, false, "1 día"),
	})
	if ranked[0].Recommended {
		t.Fatalf("a partial combination is never recommended")
	}

	ranked = rankCombinations([]Combination{
		combo("full", true, 1000, false, "1 día"),
		combo("partial", false, 0, false, "1 día"),
	})
	if !ranked[0].Recommended {
		t.Fatalf("best full-coverage combination must be recommended")
	}
	if ranked[1].Recommended {
		t.Fatalf("only the top combination may carry the flag")
	}
}

func TestEstimateUpperBoundDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		estimate string
		want     int
	}{
		{"3 a 5 días", 5},
		{"2-4", 4},
		{"1 día", 1},
		{"entrega inmediata", worstDeliveryDays},
		{"", worstDeliveryDays},
	}
	for _, tc := range cases {
		if got := estimateUpperBoundDays(tc.estimate); got != tc.want {
			t.Fatalf("estimate %q: got %d, want %d", tc.estimate, got, tc.want)
		}
	}
}
