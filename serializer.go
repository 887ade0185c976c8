package urlparser

import (
	"strconv"
	"strings"

	"github.com/region23/whatwgurl/internal/ipaddr"
)

// Serialize renders r to its href string, per spec §4.10's URL
// serializer. When excludeFragment is true the trailing "#fragment" is
// omitted, matching the serializer's optional "exclude fragment" flag
// (used by Url.Equals).
func Serialize(r *Record, excludeFragment bool) string {
	var b strings.Builder
	b.WriteString(r.Scheme)
	b.WriteByte(':')

	if r.HasHost() {
		b.WriteString("//")
		if r.HasCredentials() {
			b.WriteString(r.Username)
			if r.Password != "" {
				b.WriteByte(':')
				b.WriteString(r.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(SerializeHost(r.Host))
		if r.HasPort() {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(r.Port))
		}
	} else if !r.HasOpaquePath() && len(r.Path) > 1 && r.Path[0] == "" {
		// A host-less, non-opaque path whose first segment is empty
		// would be ambiguous with an authority marker; spec §4.10
		// requires "/." in front in that case.
		b.WriteString("/.")
	}

	if r.HasOpaquePath() {
		b.WriteString(r.Opaque)
	} else {
		for _, seg := range r.Path {
			b.WriteByte('/')
			b.WriteString(seg)
		}
	}

	if r.HasQuery() {
		b.WriteByte('?')
		b.WriteString(r.Query)
	}
	if !excludeFragment && r.HasFragment() {
		b.WriteByte('#')
		b.WriteString(r.Fragment)
	}

	return b.String()
}

// SerializeHost renders h per spec §4.6's host serializer.
func SerializeHost(h Host) string {
	switch h.Type {
	case HostIPv4:
		return ipaddr.SerializeIPv4(h.IPv4)
	case HostIPv6:
		return "[" + ipaddr.SerializeIPv6(h.IPv6) + "]"
	default:
		return h.Serial
	}
}

// PathnameString renders the path component alone (no leading scheme,
// authority, query, or fragment), matching the `pathname` getter's
// "path serializer" from spec §4.10.
func PathnameString(r *Record) string {
	if r.HasOpaquePath() {
		return r.Opaque
	}
	var b strings.Builder
	for _, seg := range r.Path {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
