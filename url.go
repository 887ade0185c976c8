package urlparser

import (
	"strconv"

	"github.com/region23/whatwgurl/internal/idna"
	"github.com/region23/whatwgurl/internal/pctenc"
)

func encodePercent(s string) string { return pctenc.Encode(s, pctenc.ComponentSet) }

func decodePercent(s string) string { return pctenc.Decode(s) }

func domainToUnicode(s string) string { return idna.ToUnicode(s, idna.Default) }

// Url is the public handle onto a parsed URL record, spec §4's "URL"
// interface. Grounded on region23-urlparser/urlparser.go's *URL return
// value from Parse, generalized to the full WHATWG record (host type,
// opaque path, search-params binding) rather than the teacher's regex-
// split Userinfo/Host/Path strings.
type Url struct {
	record *Record
	params *SearchParams
}

// Parse implements spec §4.9's "basic URL parser" entry point used
// without a base URL. It never panics; malformed input is reported
// through the returned error.
func Parse(input string) (*Url, error) {
	return ParseRef(input, "")
}

// ParseRef parses input relative to base (parsed first). An empty
// base behaves like Parse.
func ParseRef(input, base string) (*Url, error) {
	var baseRecord *Record
	if base != "" {
		b, _, err := parseURL(base, nil)
		if err != nil {
			return nil, &UrlError{Code: ErrInvalidBase, Message: "invalid base URL"}
		}
		baseRecord = b
	}
	rec, _, err := parseURL(input, baseRecord)
	if err != nil {
		return nil, err
	}
	return &Url{record: rec}, nil
}

// MustParse is Parse's throwing form, for call sites (tests, constant
// URLs) that know the input is well-formed.
func MustParse(input string) *Url {
	u, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return u
}

// CanParse reports whether input (optionally resolved against base)
// would parse successfully, without allocating a Url on success.
func CanParse(input string, base ...string) bool {
	var baseRecord *Record
	if len(base) > 0 && base[0] != "" {
		b, _, err := parseURL(base[0], nil)
		if err != nil {
			return false
		}
		baseRecord = b
	}
	_, _, err := parseURL(input, baseRecord)
	return err == nil
}

// Clone returns a deep copy of u that shares no mutable state with it.
func (u *Url) Clone() *Url {
	return &Url{record: u.record.clone()}
}

// Equals implements spec §4's URL equality comparison. excludeFragments
// mirrors the same-named parameter from the URL standard.
func (u *Url) Equals(other *Url, excludeFragments bool) bool {
	if other == nil {
		return false
	}
	return Serialize(u.record, excludeFragments) == Serialize(other.record, excludeFragments)
}

func (u *Url) IsValid() bool       { return u.record.IsValid() }
func (u *Url) IsEmpty() bool       { return !u.record.HasHost() && len(u.record.Path) == 0 && u.record.Opaque == "" }
func (u *Url) HasOpaquePath() bool { return u.record.HasOpaquePath() }
func (u *Url) HasCredentials() bool { return u.record.HasCredentials() }
func (u *Url) IsSpecialScheme() bool { return u.record.IsSpecial() }
func (u *Url) IsFileScheme() bool    { return u.record.IsFileScheme() }
func (u *Url) IsHTTPScheme() bool {
	return u.record.Scheme == "http" || u.record.Scheme == "https"
}

func (u *Url) HostType() HostType { return u.record.Host.Type }

func (u *Url) Href() string { return Serialize(u.record, false) }

func (u *Url) Protocol() string { return u.record.Scheme + ":" }

func (u *Url) Username() string { return u.record.Username }

func (u *Url) Password() string { return u.record.Password }

func (u *Url) Host() string {
	if !u.record.HasHost() {
		return ""
	}
	h := SerializeHost(u.record.Host)
	if u.record.HasPort() {
		h += ":" + strconv.Itoa(u.record.Port)
	}
	return h
}

func (u *Url) Hostname() string {
	if !u.record.HasHost() {
		return ""
	}
	return SerializeHost(u.record.Host)
}

func (u *Url) Port() string {
	if !u.record.HasPort() {
		return ""
	}
	return strconv.Itoa(u.record.Port)
}

// PortInt returns the explicit port, or -1 when absent.
func (u *Url) PortInt() int {
	if !u.record.HasPort() {
		return -1
	}
	return u.record.Port
}

// RealPortInt returns the explicit port, falling back to the scheme's
// default port, or -1 if neither exists.
func (u *Url) RealPortInt() int {
	if u.record.HasPort() {
		return u.record.Port
	}
	return defaultPortFor(u.record.Scheme)
}

func (u *Url) Pathname() string { return PathnameString(u.record) }

// Path returns the path segments in their percent-encoded form (nil for
// an opaque path).
func (u *Url) Path() []string { return append([]string(nil), u.record.Path...) }

func (u *Url) Search() string {
	if !u.record.HasQuery() {
		return ""
	}
	return "?" + u.record.Query
}

func (u *Url) Hash() string {
	if !u.record.HasFragment() {
		return ""
	}
	return "#" + u.record.Fragment
}

// SearchParams returns the live URLSearchParams bound to u; mutating it
// updates u's query string in place, per spec §4.11.
func (u *Url) SearchParams() *SearchParams {
	if u.params == nil {
		u.params = newBoundSearchParams(u.record)
	}
	return u.params
}

func (u *Url) Origin() Origin { return ComputeOrigin(u.record, nil) }

func (u *Url) SetProtocol(v string) bool { return setProtocol(u.record, v) }
func (u *Url) SetUsername(v string) bool { return setUsername(u.record, v) }
func (u *Url) SetPassword(v string) bool { return setPassword(u.record, v) }
func (u *Url) SetHost(v string) bool     { return setHost(u.record, v) }
func (u *Url) SetHostname(v string) bool { return setHostname(u.record, v) }
func (u *Url) SetPort(v string) bool     { return setPort(u.record, v) }
func (u *Url) SetPathname(v string) bool { return setPathname(u.record, v) }
// SetSearch replaces u's query. Per spec §8.4, this also resets any
// already-materialized SearchParams (from an earlier SearchParams()
// call) to reflect the new query string.
func (u *Url) SetSearch(v string) bool {
	ok := setSearch(u.record, v)
	if ok && u.params != nil {
		u.params.rebind()
	}
	return ok
}
func (u *Url) SetHash(v string) bool     { return setHash(u.record, v) }

// --- free functions, spec §4's "also exposed standalone" surface ---

// PercentEncode encodes s against the generic component set.
func PercentEncode(s string) string { return encodePercent(s) }

// PercentDecode decodes a percent-encoded string.
func PercentDecode(s string) string { return decodePercent(s) }

// EncodeURLComponent is the component-set percent-encoder, matching
// JavaScript's encodeURIComponent's code-point coverage as closely as
// spec §4.11's component percent-encode set allows.
func EncodeURLComponent(s string) string { return encodePercent(s) }

// DomainToUnicode runs the IDNA to-Unicode pipeline on domain directly,
// without going through host parsing.
func DomainToUnicode(domain string) string { return domainToUnicode(domain) }

// Equal compares two URL strings for equality after parsing both.
func Equal(a, b string) bool {
	ua, err1 := Parse(a)
	ub, err2 := Parse(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return ua.Equals(ub, false)
}
