// Package nfc implements the Unicode Normalization Form C operations the
// IDNA label-validity pass needs: canonical decomposition, canonical
// ordering + composition, and a non-allocating Quick_Check.
//
// Rather than hand-roll the decomposition/composition/CCC tables (which
// golang.org/x/text/unicode/norm already compiles and keeps current with
// the Unicode Character Database), this package is a thin façade over
// that package, named per spec §4.3's function names. Grounded on
// _examples/other_examples/e53d6478_fredbi-uri__normalize.go.go, which
// pairs golang.org/x/net/idna with golang.org/x/text/unicode/norm in
// exactly this way, and on
// _examples/other_examples/ec0415f3_golang-text__internal-export-idna-idna.go.go
// (the real golang.org/x/net/idna engine), which uses the same package
// internally for its own P2 normalization step.
package nfc

import "golang.org/x/text/unicode/norm"

// Normalize returns the NFC form of s: canonical decomposition followed
// by canonical-order composition.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Decompose returns the canonical decomposition of s with combining
// marks ordered by Canonical_Combining_Class (spec §4.3's
// canonical_decompose, excluding the composition step).
func Decompose(s string) string {
	return string(norm.NFD.Bytes([]byte(s)))
}

// Compose composes a canonically-decomposed, CCC-ordered sequence
// (spec §4.3's compose, including Hangul L+V / LV+T composition).
func Compose(decomposed string) string {
	return norm.NFC.String(decomposed)
}

// IsNormalized performs the Quick_Check + CCC-ordering test without
// allocating an output buffer (spec §4.3's is_normalized_nfc).
func IsNormalized(s string) bool {
	return norm.NFC.IsNormalString(s)
}
