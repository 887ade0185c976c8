// Package compat bridges this module's WHATWG Url to net/url.URL, for
// code that needs to hand a parsed URL to an stdlib-shaped API
// (net/http clients, etc.), plus a legacy RFC 3986 normalizer kept
// separate from the WHATWG href path on purpose (see DESIGN.md).
//
// Grounded directly on region23-urlparser/urlparser.go's ToNetURL and
// Normalize methods, generalized from that file's regex-split URL
// struct to this module's urlparser.Url.
package compat

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"

	"github.com/region23/whatwgurl/internal/idna"
)

// ToNetURL converts u into a net/url.URL. Path and RawPath both receive
// the percent-encoded pathname as serialized; nothing is decoded.
func ToNetURL(u interface {
	Protocol() string
	Username() string
	Password() string
	Host() string
	Pathname() string
	Search() string
	Hash() string
	HasOpaquePath() bool
}) *url.URL {
	scheme := strings.TrimSuffix(u.Protocol(), ":")
	ret := &url.URL{
		Scheme:   scheme,
		Host:     u.Host(),
		Path:     u.Pathname(),
		RawPath:  u.Pathname(),
		RawQuery: strings.TrimPrefix(u.Search(), "?"),
		Fragment: strings.TrimPrefix(u.Hash(), "#"),
	}
	if u.Username() != "" || u.Password() != "" {
		if u.Password() != "" {
			ret.User = url.UserPassword(u.Username(), u.Password())
		} else {
			ret.User = url.User(u.Username())
		}
	}
	if u.HasOpaquePath() {
		ret.Opaque = u.Pathname()
	}
	return ret
}

// legacyNormalizeFlags matches the teacher's normalizeFlags constant
// exactly: every purell flag region23-urlparser's Normalize enabled.
const legacyNormalizeFlags purell.NormalizationFlags = purell.FlagRemoveDefaultPort |
	purell.FlagDecodeDWORDHost | purell.FlagDecodeOctalHost | purell.FlagDecodeHexHost |
	purell.FlagRemoveUnnecessaryHostDots | purell.FlagRemoveDotSegments | purell.FlagRemoveDuplicateSlashes |
	purell.FlagUppercaseEscapes | purell.FlagDecodeUnnecessaryEscapes | purell.FlagEncodeNecessaryEscapes |
	purell.FlagSortQuery

// NormalizeNetURL runs the legacy RFC 3986 purell normalizer over a
// net/url.URL, decoding its host as Punycode to Unicode first. This is
// NOT the WHATWG href serializer (Serialize in the root package) — it
// exists only for callers migrating off net/url-based normalization
// who still want region23-urlparser's historical behavior.
func NormalizeNetURL(u *url.URL) (string, error) {
	host := idna.ToUnicode(u.Host, idna.Default)
	u.Host = strings.ToLower(host)
	u.Scheme = strings.ToLower(u.Scheme)
	return purell.NormalizeURL(u, legacyNormalizeFlags), nil
}
