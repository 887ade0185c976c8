package ipaddr

import (
	"errors"
	"strconv"
	"strings"
)

// Error codes matching the ipv6_*/ipv4_in_ipv6_* members of spec §6's
// validation-error enumeration.
var (
	ErrIPv6Unclosed               = errors.New("ipv6_unclosed")
	ErrIPv6InvalidCompression     = errors.New("ipv6_invalid_compression")
	ErrIPv6TooManyPieces          = errors.New("ipv6_too_many_pieces")
	ErrIPv6MultipleCompression    = errors.New("ipv6_multiple_compression")
	ErrIPv6InvalidCodePoint       = errors.New("ipv6_invalid_code_point")
	ErrIPv6TooFewPieces           = errors.New("ipv6_too_few_pieces")
	ErrIPv4InIPv6TooManyPieces    = errors.New("ipv4_in_ipv6_too_many_pieces")
	ErrIPv4InIPv6InvalidCodePoint = errors.New("ipv4_in_ipv6_invalid_code_point")
	ErrIPv4InIPv6OutOfRangePart   = errors.New("ipv4_in_ipv6_out_of_range_part")
	ErrIPv4InIPv6TooFewParts      = errors.New("ipv4_in_ipv6_too_few_parts")
)

// ParseIPv6 parses the body of a bracketed IPv6 literal (without the
// brackets) into 8 16-bit pieces, per spec §4.8.
func ParseIPv6(s string) (pieces [8]uint16, err error) {
	addr := [8]uint16{}
	pieceIndex := 0
	compress := -1

	i := 0
	n := len(s)

	if n > 0 && s[0] == ':' {
		if n < 2 || s[1] != ':' {
			return addr, ErrIPv6InvalidCompression
		}
		i = 2
		pieceIndex++
		compress = pieceIndex
	}

	for i < n {
		if pieceIndex == 8 {
			return addr, ErrIPv6TooManyPieces
		}
		if s[i] == ':' {
			if compress != -1 {
				return addr, ErrIPv6MultipleCompression
			}
			i++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value := 0
		length := 0
		for length < 4 && i < n && isHexDigit(s[i]) {
			value = value*16 + hexDigitVal(s[i])
			i++
			length++
		}
		if i < n && s[i] == '.' {
			if length == 0 {
				return addr, ErrIPv4InIPv6InvalidCodePoint
			}
			i -= length
			if pieceIndex > 6 {
				return addr, ErrIPv4InIPv6TooManyPieces
			}
			numbersSeen := 0
			for i < n {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if s[i] == '.' && numbersSeen < 4 {
						i++
					} else {
						return addr, ErrIPv4InIPv6InvalidCodePoint
					}
				}
				if i >= n || !isASCIIDigit(s[i]) {
					return addr, ErrIPv4InIPv6InvalidCodePoint
				}
				for i < n && isASCIIDigit(s[i]) {
					digit := int(s[i] - '0')
					if ipv4Piece == -1 {
						ipv4Piece = digit
					} else if ipv4Piece == 0 {
						return addr, ErrIPv4InIPv6InvalidCodePoint
					} else {
						ipv4Piece = ipv4Piece*10 + digit
					}
					if ipv4Piece > 255 {
						return addr, ErrIPv4InIPv6OutOfRangePart
					}
					i++
				}
				addr[pieceIndex] = addr[pieceIndex]*256 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return addr, ErrIPv4InIPv6TooFewParts
			}
			break
		}
		if i < n && s[i] == ':' {
			i++
			if i >= n {
				return addr, ErrIPv6InvalidCodePoint
			}
		} else if i < n {
			return addr, ErrIPv6InvalidCodePoint
		}
		addr[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for swaps > 0 && pieceIndex > 0 {
			addr[pieceIndex], addr[compress+swaps-1] = addr[compress+swaps-1], addr[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return addr, ErrIPv6TooFewPieces
	}

	return addr, nil
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func hexDigitVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// SerializeIPv6 writes the canonical bracket-free textual form of pieces:
// hex groups without leading zeros, with the single longest run of
// zero groups (length >= 2) compressed with "::".
func SerializeIPv6(pieces [8]uint16) string {
	var b strings.Builder
	compress, compressLen := longestZeroRun(pieces)

	ignoreZero := false
	for pieceIndex := 0; pieceIndex < 8; pieceIndex++ {
		if ignoreZero && pieces[pieceIndex] == 0 {
			continue
		}
		ignoreZero = false

		if compressLen >= 2 && pieceIndex == compress {
			if pieceIndex == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignoreZero = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[pieceIndex]), 16))
		if pieceIndex != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func longestZeroRun(pieces [8]uint16) (start, length int) {
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
			if curLen > bestLen {
				bestLen = curLen
				bestStart = curStart
			}
		} else {
			curStart, curLen = -1, 0
		}
	}
	if bestLen < 2 {
		return -1, 0
	}
	return bestStart, bestLen
}
