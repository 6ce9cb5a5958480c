package shipping

import "testing"

func groupOf(rule Rule, items ...CartItem) RuleGroup {
	return RuleGroup{Rule: rule, Items: items}
}

func TestPriceGroupBasePrice(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	group := groupOf(rule, testItem(1, 50000, nil, "r1"))

	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 10000 {
		t.Fatalf("expected base price 10000, got %d", priced.PriceCents)
	}
	if priced.FreeReason != "" {
		t.Fatalf("did not expect a free reason: %q", priced.FreeReason)
	}
}

func TestPriceGroupPerUnitSurcharge(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.ExtraUnitCents = iptr(2000)

	// The first unit rides on the base price.
	group := groupOf(rule, testItem(2, 5000, nil, "r1"))
	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 12000 {
		t.Fatalf("expected 10000 + 1×2000 = 12000, got %d", priced.PriceCents)
	}

	group = groupOf(rule, testItem(2, 5000, nil, "r1"), testItem(3, 5000, nil, "r1"))
	priced = priceGroup(group, rule.Options[0])
	if priced.PriceCents != 18000 {
		t.Fatalf("expected 10000 + 4×2000 = 18000, got %d", priced.PriceCents)
	}
}

func TestPriceGroupWeightSurcharge(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.ExtraKgCents = iptr(1500)
	rule.BaseIncludedKg = fptr(1)

	group := groupOf(rule, testItem(1, 5000, fptr(3.5), "r1"))
	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 13750 {
		t.Fatalf("expected 10000 + 2.5×1500 = 13750, got %d", priced.PriceCents)
	}

	// Weight at or under the included allowance costs nothing extra.
	group = groupOf(rule, testItem(1, 5000, fptr(1), "r1"))
	priced = priceGroup(group, rule.Options[0])
	if priced.PriceCents != 10000 {
		t.Fatalf("expected base price at included weight, got %d", priced.PriceCents)
	}
}

func TestPriceGroupMissingWeightDefaultsToOneKg(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.ExtraKgCents = iptr(1000)

	// nil weight counts as 1 kg; no included allowance configured.
	group := groupOf(rule, testItem(1, 5000, nil, "r1"))
	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 11000 {
		t.Fatalf("expected 10000 + 1×1000 = 11000, got %d", priced.PriceCents)
	}
}

func TestPriceGroupQuantityClamp(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.ExtraUnitCents = iptr(2000)

	group := groupOf(rule, testItem(0, 5000, fptr(0), "r1"))
	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 10000 {
		t.Fatalf("zero quantity counts as one unit, got %d", priced.PriceCents)
	}
}

func TestPriceGroupFreeShippingFlag(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Promoción", testOption("o1", "Estafeta", 10000, ""))
	rule.FreeShipping = true
	rule.ExtraUnitCents = iptr(2000)
	rule.ExtraKgCents = iptr(1500)

	group := groupOf(rule, testItem(10, 100, fptr(50), "r1"))
	priced := priceGroup(group, rule.Options[0])
	if priced.PriceCents != 0 {
		t.Fatalf("free rule must always price 0, got %d", priced.PriceCents)
	}
	if priced.FreeReason != FreeReasonRule {
		t.Fatalf("expected free reason %q, got %q", FreeReasonRule, priced.FreeReason)
	}
}

func TestPriceGroupSubtotalThreshold(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.FreeMinSubtotalCents = iptr(50000)

	above := groupOf(rule, testItem(1, 60000, nil, "r1"))
	priced := priceGroup(above, rule.Options[0])
	if priced.PriceCents != 0 || priced.FreeReason != FreeReasonSubtotal {
		t.Fatalf("subtotal above threshold must be free: %+v", priced)
	}

	exact := groupOf(rule, testItem(1, 50000, nil, "r1"))
	if p := priceGroup(exact, rule.Options[0]); p.PriceCents != 0 {
		t.Fatalf("threshold is inclusive, got %d", p.PriceCents)
	}

	below := groupOf(rule, testItem(1, 40000, nil, "r1"))
	if p := priceGroup(below, rule.Options[0]); p.PriceCents != 10000 {
		t.Fatalf("below threshold must pay base price, got %d", p.PriceCents)
	}
}

func TestPriceGroupUnitThreshold(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.FreeMinUnits = iptr(3)

	enough := groupOf(rule, testItem(3, 1000, nil, "r1"))
	if p := priceGroup(enough, rule.Options[0]); p.PriceCents != 0 || p.FreeReason != FreeReasonUnits {
		t.Fatalf("unit threshold must grant free shipping: %+v", p)
	}

	short := groupOf(rule, testItem(2, 1000, nil, "r1"))
	if p := priceGroup(short, rule.Options[0]); p.PriceCents != 10000 {
		t.Fatalf("below unit threshold must pay, got %d", p.PriceCents)
	}
}

func TestPriceGroupMonotonicInQuantity(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.ExtraUnitCents = iptr(500)
	rule.ExtraKgCents = iptr(250)

	prev := -1
	for qty := 1; qty <= 8; qty++ {
		group := groupOf(rule, testItem(qty, 1000, fptr(0.8), "r1"))
		price := priceGroup(group, rule.Options[0]).PriceCents
		if price < prev {
			t.Fatalf("price dropped from %d to %d at qty %d", prev, price, qty)
		}
		prev = price
	}
}

func TestPackageLimitAnnotatesWithoutBlocking(t *testing.T) {
	t.Parallel()

	rule := testRule("r1", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	rule.MaxUnitsPerPackage = iptr(2)

	group := groupOf(rule, testItem(3, 1000, nil, "r1"))
	priced := priceGroup(group, rule.Options[0])
	if !priced.ExceedsLimits || priced.LimitReason == "" {
		t.Fatalf("expected unit limit annotation: %+v", priced)
	}
	if priced.PriceCents != 10000 {
		t.Fatalf("limit breach must not change the price, got %d", priced.PriceCents)
	}

	heavy := testRule("r2", "Nacional", testOption("o1", "Estafeta", 10000, ""))
	heavy.MaxWeightKg = fptr(5)
	priced = priceGroup(groupOf(heavy, testItem(1, 1000, fptr(7), "r2")), heavy.Options[0])
	if !priced.ExceedsLimits || priced.LimitReason == "" {
		t.Fatalf("expected weight limit annotation: %+v", priced)
	}
}
