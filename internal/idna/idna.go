// Package idna implements the UTS#46 domain-to-ASCII / domain-to-Unicode
// pipeline (spec §4.5) that the host parser (spec §4.6) uses for
// non-ASCII domains.
//
// ToASCII's mapping table and label-validity checks (CheckHyphens,
// CheckBidi, CheckJoiners, VerifyDnsLength) are delegated to
// golang.org/x/net/idna, the exact engine that
// _examples/other_examples/ec0415f3_golang-text__internal-export-idna-idna.go.go
// publishes; this mirrors the teacher (region23-urlparser/urlparser.go
// calls idna.ToUnicode directly) and the other pack files that reach for
// the same package (78b9f137_jplu-trident__iri-autority.go.go,
// 788fa917_elliotwutingfeng-go-fasttld__fasttld.go.go). ToUnicode instead
// runs spec §4.5's decode step directly: our own Punycode codec
// (internal/punycode) decodes each ACE label, and internal/nfc
// (a façade over golang.org/x/text/unicode/norm) re-normalizes the
// decoded result, the two components spec §4.4/§4.3 ask to be
// implemented directly rather than borrowed from the encode-side
// library. This package also adds the forbidden-domain-code-point check
// and the "ends in a number" rule that spec §4.6/§4.9 need around the
// ASCII/IDNA boundary.
package idna

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/region23/whatwgurl/internal/nfc"
	"github.com/region23/whatwgurl/internal/pctenc"
	"github.com/region23/whatwgurl/internal/punycode"
)

// Options mirrors spec §4.5's UTS#46 option flag set.
type Options struct {
	UseSTD3ASCIIRules bool
	Transitional      bool
	VerifyDnsLength   bool
	CheckHyphens      bool
	CheckBidi         bool
	CheckJoiners      bool
	InputASCII        bool
}

// Default matches the options the WHATWG URL host parser uses: STD3
// rules off (the URL spec explicitly disables them), non-transitional,
// DNS length not verified (the URL spec does not require it), all label
// validity checks on.
var Default = Options{
	UseSTD3ASCIIRules: false,
	Transitional:      false,
	VerifyDnsLength:   false,
	CheckHyphens:      true,
	CheckBidi:         true,
	CheckJoiners:      true,
}

func (o Options) profile() *idna.Profile {
	opts := []idna.Option{
		idna.MapForLookup(),
		idna.Transitional(o.Transitional),
		idna.CheckHyphens(o.CheckHyphens),
		idna.CheckJoiners(o.CheckJoiners),
		// MapForLookup turns StrictDomainName on; set it explicitly so
		// UseSTD3ASCIIRules decides.
		idna.StrictDomainName(o.UseSTD3ASCIIRules),
	}
	if o.VerifyDnsLength {
		opts = append(opts, idna.ValidateLabels(true), idna.VerifyDNSLength(true))
	}
	if o.CheckBidi {
		opts = append(opts, idna.BidiRule())
	}
	return idna.New(opts...)
}

// ToASCII runs the UTS#46 pipeline and returns the ASCII (A-label) form
// of domain, joining labels with '.'. ok is false when any label fails
// the Validity Criteria or a disallowed code point survives mapping,
// matching spec §4.5's to-ASCII failure contract.
func ToASCII(domain string, opts Options) (ascii string, ok bool) {
	out, err := opts.profile().ToASCII(domain)
	if err != nil {
		return "", false
	}
	return out, true
}

// ToUnicode runs spec §4.5's to-Unicode over domain, decoding each ACE
// ("xn--") label back to its Unicode form and returns the Unicode
// (U-label) form of domain. Per spec §4.5, to-Unicode does not fail on
// disallowed code points (Unicode 15.1+ behavior); it always returns a
// best-effort string, falling back to the original label whenever the
// ACE payload fails to decode as Punycode.
//
// opts is accepted for symmetry with ToASCII; RFC 3492 decode itself
// takes no UTS#46 flags.
func ToUnicode(domain string, opts Options) string {
	labels := strings.Split(domain, ".")
	for i, label := range labels {
		if u, ok := decodeACELabel(label); ok {
			labels[i] = u
		}
	}
	return strings.Join(labels, ".")
}

// decodeACELabel decodes a single "xn--"-prefixed label (matched
// ASCII-case-insensitively, per spec §4.4) via the raw RFC 3492
// bootstring codec, then runs the result through NFC per spec §4.3 —
// Punycode decode alone yields canonically-unordered, uncomposed
// output whenever the original label contained combining marks.
func decodeACELabel(label string) (string, bool) {
	if len(label) < 4 || !strings.EqualFold(label[:4], acePrefix) {
		return "", false
	}
	runes, status := punycode.Decode(label[4:])
	if status != punycode.Ok {
		return "", false
	}
	return nfc.Normalize(string(runes)), true
}

const acePrefix = "xn--"

// EndsInANumber reports whether the last non-empty, dot-separated label
// of s looks like an IPv4 address candidate: all ASCII digits, or a
// "0x"/"0X"-prefixed hex string. Grounded on spec §4.6's
// "ends in a number" definition.
func EndsInANumber(s string) bool {
	parts := strings.Split(strings.TrimSuffix(s, "."), ".")
	if len(parts) == 0 {
		return false
	}
	last := parts[len(parts)-1]
	if last == "" {
		return false
	}
	if len(last) > 1 && (strings.HasPrefix(last, "0x") || strings.HasPrefix(last, "0X")) {
		return len(last) > 2 && isAllHex(last[2:])
	}
	return isAllDigits(last)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAllHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !pctenc.IsHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// HasForbiddenDomainCodePoint reports whether s (assumed ASCII after
// ToASCII) contains a forbidden domain code point per spec §4.6.
func HasForbiddenDomainCodePoint(s string) bool {
	for _, r := range s {
		if pctenc.IsForbiddenDomainCodePoint(r) {
			return true
		}
	}
	return false
}

// PackedUnicodeVersion reports the Unicode version compiled into
// golang.org/x/net/idna as spec §4.5's "32-bit major/minor/patch/ext"
// packed integer. golang.org/x/net/idna does not expose its compiled
// Unicode version directly, so this reports the version the module
// dependency is documented (SPEC_FULL.md) to be pinned against.
func PackedUnicodeVersion() uint32 {
	const major, minor, patch, ext = 15, 0, 0, 0
	return uint32(major)<<24 | uint32(minor)<<16 | uint32(patch)<<8 | uint32(ext)
}

// UnicodeVersion formats PackedUnicodeVersion as "major.minor.patch".
func UnicodeVersion() string {
	v := PackedUnicodeVersion()
	return strconv.Itoa(int(v>>24&0xFF)) + "." + strconv.Itoa(int(v>>16&0xFF)) + "." + strconv.Itoa(int(v>>8&0xFF))
}
