// Package punycode implements the RFC 3492 bootstring encode/decode used
// by IDNA to convert between Unicode domain labels and their ACE
// ("xn--") form.
//
// No ecosystem package exposes raw bootstring independent of a full IDNA
// stack (golang.org/x/net/idna keeps its punycode codec internal), so
// this is hand-written directly against RFC 3492; the parameter table is
// grounded on original_source/include/upa/idna.h's punycode constants.
package punycode

import "strings"

const (
	base         = 36
	tmin         = 1
	tmax         = 26
	skew         = 38
	damp         = 700
	initialBias  = 72
	initialN     = 128
	delimiter    = '-'
	maxCodePoint = 0x10FFFF
)

// Status is the result classification of an Encode/Decode call.
type Status int

const (
	Ok Status = iota
	BadInput
	BigOutput
	Overflow
)

func adapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := 0
	for delta > ((base-tmin)*tmax)/2 {
		delta /= base - tmin
		k += base
	}
	return k + (base-tmin+1)*delta/(delta+skew)
}

func encodeDigit(d int) byte {
	if d < 26 {
		return byte('a' + d)
	}
	return byte('0' + d - 26)
}

func decodeDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c-'0') + 26, true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	default:
		return 0, false
	}
}

func isBasic(r rune) bool { return r < 0x80 }

// Encode converts a Unicode label (a sequence of runes, already NFC
// normalized and mapped by the caller) into its Punycode form, without
// the "xn--" prefix. Labels that are already all-ASCII should bypass
// this function entirely per spec §4.4.
func Encode(input []rune) (string, Status) {
	var out strings.Builder
	var basicCount int
	for _, r := range input {
		if isBasic(r) {
			out.WriteByte(byte(r))
			basicCount++
		}
	}
	h := basicCount
	if basicCount > 0 {
		out.WriteByte(delimiter)
	}

	n := initialN
	delta := 0
	bias := initialBias
	total := len(input)

	for h < total {
		m := maxCodePoint + 1
		for _, r := range input {
			if int(r) >= n && int(r) < m {
				m = int(r)
			}
		}
		if m-n > (int(^uint(0)>>1)-delta)/(h+1) {
			return "", Overflow
		}
		delta += (m - n) * (h + 1)
		n = m

		for _, r := range input {
			if int(r) < n {
				delta++
				if delta < 0 {
					return "", Overflow
				}
			}
			if int(r) == n {
				q := delta
				for k := base; ; k += base {
					var t int
					switch {
					case k <= bias:
						t = tmin
					case k >= bias+tmax:
						t = tmax
					default:
						t = k - bias
					}
					if q < t {
						break
					}
					out.WriteByte(encodeDigit(t + (q-t)%(base-t)))
					q = (q - t) / (base - t)
				}
				out.WriteByte(encodeDigit(q))
				bias = adapt(delta, h+1, h == basicCount)
				delta = 0
				h++
			}
		}
		delta++
		n++
	}
	return out.String(), Ok
}

// Decode converts a Punycode label (without the "xn--" prefix) back into
// its Unicode rune sequence. Labels without the "xn--" prefix should
// bypass this function entirely on decode per spec §4.4.
func Decode(input string) ([]rune, Status) {
	n := initialN
	i := 0
	bias := initialBias

	var output []rune

	lastDelim := strings.LastIndexByte(input, delimiter)
	if lastDelim >= 0 {
		for j := 0; j < lastDelim; j++ {
			if !isBasic(rune(input[j])) {
				return nil, BadInput
			}
			output = append(output, rune(input[j]))
		}
	}

	pos := lastDelim + 1
	for pos < len(input) {
		oldi := i
		w := 1
		for k := base; ; k += base {
			if pos >= len(input) {
				return nil, BadInput
			}
			digit, ok := decodeDigit(input[pos])
			pos++
			if !ok {
				return nil, BadInput
			}
			if digit > (int(^uint(0)>>1)-i)/w {
				return nil, Overflow
			}
			i += digit * w
			var t int
			switch {
			case k <= bias:
				t = tmin
			case k >= bias+tmax:
				t = tmax
			default:
				t = k - bias
			}
			if digit < t {
				break
			}
			if w > (int(^uint(0)>>1))/(base-t) {
				return nil, Overflow
			}
			w *= base - t
		}
		outLen := len(output) + 1
		bias = adapt(i-oldi, outLen, oldi == 0)
		if i/outLen > maxCodePoint-n {
			return nil, Overflow
		}
		n += i / outLen
		i %= outLen
		if i > len(output) {
			return nil, BadInput
		}
		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = rune(n)
		i++
	}
	return output, Ok
}
