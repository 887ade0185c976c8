package nfc

import "testing"

const (
	// NFC: LATIN SMALL LETTER E WITH ACUTE as a single code point.
	composed = "café"
	// NFD: LATIN SMALL LETTER E followed by COMBINING ACUTE ACCENT.
	decomposed = "café"
)

func TestNormalizeComposesDecomposedInput(t *testing.T) {
	if got := Normalize(decomposed); got != composed {
		t.Errorf("Normalize(%q) = %q, want %q", decomposed, got, composed)
	}
}

func TestDecomposeThenCompose(t *testing.T) {
	d := Decompose(composed)
	if d != decomposed {
		t.Fatalf("Decompose(%q) = %q, want %q", composed, d, decomposed)
	}
	if got := Compose(d); got != composed {
		t.Errorf("Compose(Decompose(%q)) = %q, want %q", composed, got, composed)
	}
}

func TestIsNormalized(t *testing.T) {
	if !IsNormalized(composed) {
		t.Error("expected precomposed form to be normalized")
	}
	if IsNormalized(decomposed) {
		t.Error("expected decomposed form to be reported as not normalized")
	}
}
