// Package pctenc implements the WHATWG percent-encoding codec: a
// code_point_set bitmap over the 256 byte values and the encode/decode
// functions that use it, plus the small auxiliary code-point sets the URL
// parser needs (forbidden host/domain code points, ASCII-domain fast
// path, scheme/hex character classes).
//
// Grounded on original_source/include/upa/url_percent_encode.h: the set
// construction (copy + exclude/include from a C0-control baseline) and
// the exact byte lists mirror that file so encoding output stays
// byte-identical to the WHATWG reference.
package pctenc

import (
	"strings"

	"github.com/region23/whatwgurl/internal/utf"
)

// Set is a 256-bit bitmap stating "do NOT percent-encode this byte".
type Set [32]uint8

func (s *Set) include(c byte) { s[c>>3] |= 1 << (c & 7) }
func (s *Set) exclude(c byte) { s[c>>3] &^= 1 << (c & 7) }

func (s *Set) includeRange(from, to byte) {
	for c := int(from); c <= int(to); c++ {
		s.include(byte(c))
	}
}

// Contains reports whether b must NOT be percent-encoded under s.
func (s Set) Contains(b byte) bool {
	return s[b>>3]&(1<<(b&7)) != 0
}

func newSet(base *Set, exclude, include []byte) Set {
	var s Set
	if base != nil {
		s = *base
	}
	for _, c := range exclude {
		s.exclude(c)
	}
	for _, c := range include {
		s.include(c)
	}
	return s
}

// c0ControlSet is the baseline "C0 control percent-encode set": every
// byte in 0x20..0x7E is left unencoded, everything else (C0 controls and
// every byte >= 0x7F) is encoded.
var c0ControlSet = func() Set {
	var s Set
	s.includeRange(0x20, 0x7E)
	return s
}()

// The standard percent-encode sets, per https://url.spec.whatwg.org/#percent-encoded-bytes.
var (
	FragmentSet = newSet(&c0ControlSet, []byte{0x20, 0x22, 0x3C, 0x3E, 0x60}, nil)
	QuerySet    = newSet(&c0ControlSet, []byte{0x20, 0x22, 0x23, 0x3C, 0x3E}, nil)
	SpecialQuerySet = newSet(&QuerySet, []byte{0x27}, nil)
	PathSet         = newSet(&QuerySet, []byte{0x3F, 0x60, 0x7B, 0x7D}, nil)
	RawPathSet      = newSet(&PathSet, []byte{0x25}, nil)
	PosixPathSet    = newSet(&RawPathSet, []byte{0x3A, 0x5C, 0x7C}, nil)
	UserinfoSet     = newSet(&PathSet, []byte{0x2F, 0x3A, 0x3B, 0x3D, 0x40, 0x5B, 0x5C, 0x5D, 0x5E, 0x7C}, nil)
	ComponentSet    = newSet(&UserinfoSet, []byte{0x24, 0x25, 0x26, 0x2B, 0x2C}, nil)
	C0Set           = c0ControlSet
)

// Forbidden code points, https://url.spec.whatwg.org/#forbidden-host-code-point
// and #forbidden-domain-code-point.
var forbiddenHostBytes = []byte{0x00, 0x09, 0x0A, 0x0D, 0x20, 0x23, 0x2F, 0x3A, 0x3C, 0x3E, 0x3F, 0x40, 0x5B, 0x5C, 0x5D, 0x5E, 0x7C}

func isForbiddenHostByte(b byte) bool {
	for _, c := range forbiddenHostBytes {
		if c == b {
			return true
		}
	}
	return false
}

// IsForbiddenHostCodePoint reports whether r is a forbidden host code
// point (used by the opaque-host parser).
func IsForbiddenHostCodePoint(r rune) bool {
	return r >= 0 && r <= 0x7F && isForbiddenHostByte(byte(r))
}

// IsForbiddenDomainCodePoint reports whether r is a forbidden domain code
// point: the forbidden host code points, plus C0 controls, '%' and DEL.
func IsForbiddenDomainCodePoint(r rune) bool {
	if r < 0 || r > 0x7F {
		return false
	}
	if r <= 0x1F || r == 0x25 || r == 0x7F {
		return true
	}
	return isForbiddenHostByte(byte(r))
}

// IsASCIIDomainByte reports whether b may appear in the fast ASCII-domain
// path: every ASCII byte except C0 controls, forbidden host code points
// and forbidden domain code points.
func IsASCIIDomainByte(b byte) bool {
	if b < 0x20 || b > 0x7E {
		return false
	}
	if isForbiddenHostByte(b) || b == 0x25 {
		return false
	}
	return true
}

// IsSchemeByte reports whether b is a valid non-leading scheme byte:
// ASCII alphanumeric, '+', '-', '.'.
func IsSchemeByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return true
	case b == '+' || b == '-' || b == '.':
		return true
	default:
		return false
	}
}

func IsHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'F' || b >= 'a' && b <= 'f'
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return b - 'a' + 10
	}
}

const upperHex = "0123456789ABCDEF"

// EncodeByte appends the %HH encoding of b to dst.
func EncodeByte(dst []byte, b byte) []byte {
	return append(dst, '%', upperHex[b>>4], upperHex[b&0xF])
}

// EncodeRune percent-encodes r (after UTF-8 encoding) against set and
// appends the result to dst.
func EncodeRune(dst []byte, r rune, set Set) []byte {
	var buf [4]byte
	n := len(utf.EncodeUTF8Rune(buf[:0], r))
	for i := 0; i < n; i++ {
		b := buf[i]
		if set.Contains(b) {
			dst = append(dst, b)
		} else {
			dst = EncodeByte(dst, b)
		}
	}
	return dst
}

// Encode percent-encodes input (repairing malformed UTF-8 to U+FFFD
// first) against set.
func Encode(input string, set Set) string {
	repaired, ok := utf.RepairUTF8(input)
	if ok {
		// fast path: scan for any byte needing encoding before allocating
		needsEncode := false
		for i := 0; i < len(repaired); i++ {
			if !set.Contains(repaired[i]) {
				needsEncode = true
				break
			}
		}
		if !needsEncode {
			return repaired
		}
	}
	var b strings.Builder
	b.Grow(len(repaired) + 8)
	for i := 0; i < len(repaired); i++ {
		c := repaired[i]
		if set.Contains(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0xF])
		}
	}
	return b.String()
}

// Decode percent-decodes input. An unmatched '%' (not followed by two
// hex digits) is emitted literally. The decoded bytes are repaired as
// UTF-8 (malformed sequences become U+FFFD) before being returned.
func Decode(input string) string {
	if strings.IndexByte(input, '%') < 0 {
		return input
	}
	var b []byte
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '%' && i+2 < len(input) && IsHexDigit(input[i+1]) && IsHexDigit(input[i+2]) {
			b = append(b, hexVal(input[i+1])<<4|hexVal(input[i+2]))
			i += 2
		} else {
			b = append(b, c)
		}
	}
	repaired, _ := utf.RepairUTF8(string(b))
	return repaired
}

// DecodeBytes is like Decode but returns the raw decoded bytes without
// UTF-8 repair, for callers (like the host parser) that need to
// reinterpret the bytes themselves.
func DecodeBytes(input string) []byte {
	var b []byte
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '%' && i+2 < len(input) && IsHexDigit(input[i+1]) && IsHexDigit(input[i+2]) {
			b = append(b, hexVal(input[i+1])<<4|hexVal(input[i+2]))
			i += 2
		} else {
			b = append(b, c)
		}
	}
	return b
}
