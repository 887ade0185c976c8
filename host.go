package urlparser

import (
	"strings"

	"github.com/region23/whatwgurl/internal/idna"
	"github.com/region23/whatwgurl/internal/ipaddr"
	"github.com/region23/whatwgurl/internal/pctenc"
)

// HostType is the 3-bit HOST_TYPE flag from spec §3.
type HostType uint8

const (
	HostEmpty HostType = iota
	HostOpaque
	HostDomain
	HostIPv4
	HostIPv6
)

// Host is the tagged host value from spec §3.2 ("Host value"): the
// serialized string form plus a type tag. IPv4/IPv6 are populated for
// the numeric host types so callers can get the typed value back out
// without reparsing.
type Host struct {
	Type    HostType
	Serial  string // the serialized form, as stored in the URL record
	IPv4    uint32
	IPv6    [8]uint16
}

func (h Host) isNull() bool { return h.Type == HostEmpty && h.Serial == "" }

// parseHost dispatches on the first input byte per spec §4.6. isOpaque
// selects the opaque-host parser (used for non-special schemes).
func parseHost(input string, isOpaque bool) (Host, ValidationError) {
	if input == "" {
		if isOpaque {
			return Host{Type: HostEmpty}, ErrOK
		}
		return Host{}, ErrHostMissing
	}

	if input[0] == '[' {
		if input[len(input)-1] != ']' {
			return Host{}, ErrIPv6Unclosed
		}
		pieces, err := ipaddr.ParseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, ValidationError(err.Error())
		}
		return Host{Type: HostIPv6, Serial: "[" + ipaddr.SerializeIPv6(pieces) + "]", IPv6: pieces}, ErrOK
	}

	if isOpaque {
		return parseOpaqueHost(input)
	}

	// Fast path: every byte in the ASCII-domain-code-point set and no
	// "xn--" label present.
	if isFastASCIIDomain(input) {
		lower := strings.ToLower(input)
		if idna.EndsInANumber(lower) {
			return parseIPv4Host(lower)
		}
		return Host{Type: HostDomain, Serial: lower}, ErrOK
	}

	decoded := pctenc.DecodeBytes(input)
	ascii, ok := idna.ToASCII(string(decoded), idna.Default)
	if !ok {
		return Host{}, ErrDomainToASCII
	}
	if idna.HasForbiddenDomainCodePoint(ascii) {
		return Host{}, ErrDomainInvalidCodePoint
	}
	if idna.EndsInANumber(ascii) {
		return parseIPv4Host(ascii)
	}
	return Host{Type: HostDomain, Serial: ascii}, ErrOK
}

func isFastASCIIDomain(s string) bool {
	if strings.Contains(s, "xn--") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !pctenc.IsASCIIDomainByte(s[i]) {
			return false
		}
	}
	return true
}

func parseIPv4Host(s string) (Host, ValidationError) {
	addr, _, err := ipaddr.ParseIPv4(s)
	if err != nil {
		return Host{}, ValidationError(err.Error())
	}
	return Host{Type: HostIPv4, Serial: ipaddr.SerializeIPv4(addr), IPv4: addr}, ErrOK
}

func parseOpaqueHost(input string) (Host, ValidationError) {
	for _, r := range input {
		if pctenc.IsForbiddenHostCodePoint(r) {
			return Host{}, ErrHostInvalidCodePoint
		}
	}
	return Host{Type: HostOpaque, Serial: pctenc.Encode(input, pctenc.C0Set)}, ErrOK
}
