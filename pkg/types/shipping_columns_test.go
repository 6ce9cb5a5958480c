package types

import "testing"

func TestPostalRangeContains(t *testing.T) {
	t.Parallel()

	r := PostalRange{From: "44100", To: "44990"}

	if !r.Contains("44100") || !r.Contains("44990") || !r.Contains("44500") {
		t.Fatalf("expected bounds and interior to match")
	}
	if r.Contains("44099") || r.Contains("45000") {
		t.Fatalf("expected codes outside the range to miss")
	}
	if r.Contains("") {
		t.Fatalf("empty code must never match")
	}
}

func TestNormalizePostalCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  44100 ": "44100",
		"750":      "00750",
		"":         "",
		"SW1A 1AA": "SW1A 1AA",
	}
	for in, want := range cases {
		if got := NormalizePostalCode(in); got != want {
			t.Fatalf("NormalizePostalCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPostalCodeListScanRoundTrip(t *testing.T) {
	t.Parallel()

	list := PostalCodeList{"44100", "44990"}
	val, err := list.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var decoded PostalCodeList
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != "44100" || decoded[1] != "44990" {
		t.Fatalf("unexpected round trip: %#v", decoded)
	}

	var empty PostalCodeList
	if v, err := empty.Value(); err != nil || v != nil {
		t.Fatalf("nil list must persist as NULL, got %v (%v)", v, err)
	}
}

func TestRuleRefsScanRoundTrip(t *testing.T) {
	t.Parallel()

	var refs RuleRefs
	if err := refs.Scan([]byte(`["local","nacional"]`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	list, ok := refs.Raw.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected two raw refs, got %#v", refs.Raw)
	}

	val, err := refs.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if string(val.([]byte)) != `["local","nacional"]` {
		t.Fatalf("unexpected serialized refs: %s", val)
	}
}
