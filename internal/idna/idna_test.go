package idna

import "testing"

func TestEndsInANumber(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"192.168.0.1", true},
		{"0x1A", true},
		{"0x", false},
		{"example.com", false},
		{"example.0x1", true},
		{"example.", false},
		{"", false},
	}
	for _, c := range cases {
		if got := EndsInANumber(c.in); got != c.want {
			t.Errorf("EndsInANumber(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToASCIIRoundTrip(t *testing.T) {
	ascii, ok := ToASCII("bücher.de", Default)
	if !ok {
		t.Fatal("ToASCII failed unexpectedly")
	}
	if ascii != "xn--bcher-kva.de" {
		t.Fatalf("ToASCII = %q, want xn--bcher-kva.de", ascii)
	}
	uni := ToUnicode(ascii, Default)
	if uni != "bücher.de" {
		t.Fatalf("ToUnicode = %q, want bücher.de", uni)
	}
}

func TestToASCIIPassesThroughPlainDomains(t *testing.T) {
	ascii, ok := ToASCII("example.com", Default)
	if !ok || ascii != "example.com" {
		t.Fatalf("ToASCII(example.com) = (%q, %v)", ascii, ok)
	}
}

func TestToUnicodeDecodesEachLabelThroughPunycode(t *testing.T) {
	got := ToUnicode("xn--bcher-kva.xn--mnchen-3ya", Default)
	want := "bücher.münchen"
	if got != want {
		t.Fatalf("ToUnicode = %q, want %q", got, want)
	}
}

func TestToUnicodeMatchesACEPrefixCaseInsensitively(t *testing.T) {
	got := ToUnicode("XN--bcher-kva.de", Default)
	want := "bücher.de"
	if got != want {
		t.Fatalf("ToUnicode = %q, want %q", got, want)
	}
}

func TestToUnicodeLeavesPlainLabelsAlone(t *testing.T) {
	if got := ToUnicode("example.com", Default); got != "example.com" {
		t.Fatalf("ToUnicode = %q, want example.com", got)
	}
}

func TestToUnicodeFallsBackOnBadACEPayload(t *testing.T) {
	got := ToUnicode("xn--!!!.com", Default)
	want := "xn--!!!.com"
	if got != want {
		t.Fatalf("ToUnicode = %q, want %q (decode failure should pass the label through unchanged)", got, want)
	}
}

func TestHasForbiddenDomainCodePoint(t *testing.T) {
	if !HasForbiddenDomainCodePoint("exa mple.com") {
		t.Error("expected a space to be forbidden")
	}
	if HasForbiddenDomainCodePoint("example.com") {
		t.Error("expected a plain domain to pass")
	}
}
