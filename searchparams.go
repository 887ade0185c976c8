package urlparser

import (
	"sort"
	"strings"

	"github.com/region23/whatwgurl/internal/utf"
)

// pair is a single name/value entry in a SearchParams list, spec §4.11.
type pair struct {
	name  string
	value string
}

// SearchParams is the URLSearchParams object: an ordered name/value
// list with an optional binding back to the URL record that owns it.
// Grounded on
// other_examples/e67af412_oleiade-sobek-webapi-url__url-searchparams.go.go's
// entries-slice-plus-owner-pointer shape, adapted to this repo's
// Record/update-steps model (spec §4.11's "update steps" re-serialize
// into url.Query rather than a bespoke syncFromSearchParams hook).
type SearchParams struct {
	list  []pair
	owner *Record
}

// NewSearchParams builds an unbound SearchParams from a raw query
// string, which may or may not carry a leading '?'.
func NewSearchParams(query string) *SearchParams {
	return &SearchParams{list: ParseFormURLEncoded(strings.TrimPrefix(query, "?"))}
}

// newBoundSearchParams is used by the Url type (url.go) to hand out a
// SearchParams whose mutations update owner's query in place.
func newBoundSearchParams(owner *Record) *SearchParams {
	sp := &SearchParams{owner: owner}
	if owner.HasQuery() {
		sp.list = ParseFormURLEncodedPairs(owner.Query)
	}
	return sp
}

func (sp *SearchParams) update() {
	if sp.owner == nil {
		return
	}
	if len(sp.list) == 0 {
		sp.owner.clearQuery()
		return
	}
	sp.owner.setQuery(SerializeFormURLEncoded(sp.list))
}

// rebind reloads sp's list from its owner's current query, spec §4.11's
// "set a URL's query" step that also "set url's query object's list to
// the result of parsing query". Called whenever something other than sp
// itself (e.g. the `search` setter) has changed owner.Query, so a
// previously materialized SearchParams stays in sync with it.
func (sp *SearchParams) rebind() {
	if sp.owner == nil {
		return
	}
	if sp.owner.HasQuery() {
		sp.list = ParseFormURLEncodedPairs(sp.owner.Query)
	} else {
		sp.list = nil
	}
}

func (sp *SearchParams) Size() int { return len(sp.list) }

func (sp *SearchParams) Append(name, value string) {
	sp.list = append(sp.list, pair{name, value})
	sp.update()
}

func (sp *SearchParams) Delete(name string, value *string) {
	out := sp.list[:0]
	for _, p := range sp.list {
		if p.name == name && (value == nil || p.value == *value) {
			continue
		}
		out = append(out, p)
	}
	sp.list = out
	sp.update()
}

func (sp *SearchParams) Get(name string) (string, bool) {
	for _, p := range sp.list {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

func (sp *SearchParams) GetAll(name string) []string {
	var out []string
	for _, p := range sp.list {
		if p.name == name {
			out = append(out, p.value)
		}
	}
	return out
}

func (sp *SearchParams) Has(name string, value *string) bool {
	for _, p := range sp.list {
		if p.name == name && (value == nil || p.value == *value) {
			return true
		}
	}
	return false
}

// Set replaces the value of the first entry named name, removing all
// later entries with that name, or appends a new entry if none exists.
func (sp *SearchParams) Set(name, value string) {
	found := false
	out := sp.list[:0]
	for _, p := range sp.list {
		if p.name != name {
			out = append(out, p)
			continue
		}
		if !found {
			p.value = value
			out = append(out, p)
			found = true
		}
	}
	sp.list = out
	if !found {
		sp.list = append(sp.list, pair{name, value})
	}
	sp.update()
}

// Sort reorders the list by UTF-16 code-unit comparison of names,
// stably preserving relative order among equal names, per spec §4.11's
// "sort" operation.
func (sp *SearchParams) Sort() {
	sort.SliceStable(sp.list, func(i, j int) bool {
		return utf.CompareUTF16CodeUnits(sp.list[i].name, sp.list[j].name) < 0
	})
	sp.update()
}

func (sp *SearchParams) Entries() [][2]string {
	out := make([][2]string, len(sp.list))
	for i, p := range sp.list {
		out[i] = [2]string{p.name, p.value}
	}
	return out
}

func (sp *SearchParams) Keys() []string {
	out := make([]string, len(sp.list))
	for i, p := range sp.list {
		out[i] = p.name
	}
	return out
}

func (sp *SearchParams) Values() []string {
	out := make([]string, len(sp.list))
	for i, p := range sp.list {
		out[i] = p.value
	}
	return out
}

func (sp *SearchParams) String() string {
	return SerializeFormURLEncoded(sp.list)
}

// --- application/x-www-form-urlencoded codec, spec §4.11 ---

func formEncodeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case c == '*' || c == '-' || c == '.' || c == '_' ||
			(c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperHexDigit(c >> 4))
			b.WriteByte(upperHexDigit(c & 0xF))
		}
	}
	return b.String()
}

func upperHexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}

func formDecodeString(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b = append(b, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b = append(b, hexNibble(s[i+1])<<4|hexNibble(s[i+2]))
			i += 2
		default:
			b = append(b, c)
		}
	}
	repaired, _ := utf.RepairUTF8(string(b))
	return repaired
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// ParseFormURLEncoded parses an x-www-form-urlencoded byte string into
// name/value pairs; it is the same parser as ParseFormURLEncodedPairs.
func ParseFormURLEncoded(s string) []pair { return ParseFormURLEncodedPairs(s) }

// ParseFormURLEncodedPairs is the internal parser shared by NewSearchParams
// and newBoundSearchParams.
func ParseFormURLEncodedPairs(s string) []pair {
	if s == "" {
		return nil
	}
	var out []pair
	for _, seq := range strings.Split(s, "&") {
		if seq == "" {
			continue
		}
		name, value, hasEq := strings.Cut(seq, "=")
		if !hasEq {
			value = ""
		}
		out = append(out, pair{formDecodeString(name), formDecodeString(value)})
	}
	return out
}

// SerializeFormURLEncoded renders pairs back to x-www-form-urlencoded form.
func SerializeFormURLEncoded(pairs []pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEncodeString(p.name))
		b.WriteByte('=')
		b.WriteString(formEncodeString(p.value))
	}
	return b.String()
}
