package urlparser

import (
	"strconv"
	"strings"

	"github.com/region23/whatwgurl/internal/pctenc"
)

// parserState names the basic URL parser's states, spec §4.9. Grounded
// on other_examples/3ba66546_nlnwa-whatwg-url__url-parser.go.go's state
// enum, renamed to match spec.md's state list exactly (it folds
// "cannot-be-a-base-URL state" into "opaque path state").
type parserState int

const (
	noStateOverride parserState = iota
	stateSchemeStart
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// cursor walks a rune slice with one-step rewind, matching the
// "pointer" concept spec §4.9 manipulates directly.
type cursor struct {
	r   []rune
	i   int
	eof bool
}

func newCursor(s string) *cursor { return &cursor{r: []rune(s)} }

func (c *cursor) next() rune {
	if c.i >= len(c.r) {
		c.eof = true
		return 0
	}
	r := c.r[c.i]
	c.i++
	return r
}

func (c *cursor) rewindLast() {
	if c.eof {
		return
	}
	if c.i > 0 {
		c.i--
	}
}

func (c *cursor) reset() { c.i = 0; c.eof = false }

func (c *cursor) remainingStartsWith(prefix string) bool {
	pr := []rune(prefix)
	if len(c.r)-c.i < len(pr) {
		return false
	}
	for k, pc := range pr {
		if c.r[c.i+k] != pc {
			return false
		}
	}
	return true
}

func (c *cursor) remainingFrom() string { return string(c.r[c.i:]) }

// atInvalidPercentEncoding reports whether the pointer sits on
// a '%' not followed by two hex digits, spec §4.9's "remaining" check
// used to report (non-fatal) invalid_URL_unit.
func (c *cursor) atInvalidPercentEncoding() bool {
	if c.i == 0 || c.r[c.i-1] != '%' {
		return false
	}
	rem := c.r[c.i:]
	if len(rem) < 2 {
		return true
	}
	return !isHexRune(rem[0]) || !isHexRune(rem[1])
}

func isHexRune(r rune) bool { return r < 128 && pctenc.IsHexDigit(byte(r)) }

// parser runs the basic URL parser (spec §4.9). errs accumulates every
// non-failure validation error encountered; the first failure aborts
// and is returned as err.
type parser struct {
	errs []ValidationError
}

func (p *parser) report(e ValidationError) {
	p.errs = append(p.errs, e)
}

// parseURL is the entry point used by Parse/ParseRef/MustParse (url.go).
func parseURL(input string, base *Record) (*Record, []ValidationError, error) {
	p := &parser{}
	r, err := p.basicParse(input, base, nil, noStateOverride)
	return r, p.errs, err
}

func (p *parser) fail(code ValidationError) (*Record, error) {
	return nil, &UrlError{Code: code, Message: string(code)}
}

func (p *parser) basicParse(input string, base, url *Record, override parserState) (*Record, error) {
	overridden := override != noStateOverride

	if url == nil {
		url = &Record{}
		trimmed := strings.TrimFunc(input, isC0OrSpace)
		if trimmed != input {
			p.report(ErrInvalidURLUnit)
		}
		input = trimmed
	}
	if stripped := stripTabsAndNewlines(input); stripped != input {
		p.report(ErrInvalidURLUnit)
		input = stripped
	}

	c := newCursor(input)
	state := stateSchemeStart
	if overridden {
		state = override
	}

	var buf strings.Builder
	atFlag := false
	bracketFlag := false
	passwordSeenFlag := false

	for {
		r := c.next()

		switch state {
		case stateSchemeStart:
			if isASCIIAlpha(r) {
				buf.WriteRune(toLowerRune(r))
				state = stateScheme
			} else if !overridden {
				state = stateNoScheme
				c.rewindLast()
			} else {
				return p.fail(ErrSchemeInvalidCodePoint)
			}

		case stateScheme:
			if isSchemeRune(r) {
				buf.WriteRune(toLowerRune(r))
			} else if r == ':' {
				scheme := buf.String()
				if overridden {
					if url.IsSpecial() != isSpecialScheme(scheme) {
						return p.fail(ErrIgnored)
					}
					if (url.HasCredentials() || url.HasPort()) && scheme == "file" {
						return p.fail(ErrIgnored)
					}
					if url.Scheme == "file" && (!url.HasHost() || url.Host.Serial == "") {
						return p.fail(ErrIgnored)
					}
				}
				url.Scheme = scheme
				if overridden {
					cleanDefaultPort(url)
					return url, nil
				}
				buf.Reset()
				switch {
				case url.Scheme == "file":
					if !c.remainingStartsWith("//") {
						p.report(ErrSpecialSchemeMissingFollowingSolidus)
					}
					state = stateFile
				case url.IsSpecial() && base != nil && base.Scheme == url.Scheme:
					state = stateSpecialRelativeOrAuthority
				case url.IsSpecial():
					state = stateSpecialAuthoritySlashes
				case c.remainingStartsWith("/"):
					state = statePathOrAuthority
					c.next()
				default:
					url.set(flagOpaquePath)
					state = stateOpaquePath
				}
			} else if !overridden {
				buf.Reset()
				state = stateNoScheme
				c.reset()
			} else {
				return p.fail(ErrSchemeInvalidCodePoint)
			}

		case stateNoScheme:
			if (base == nil || base.HasOpaquePath()) && r != '#' {
				return p.fail(ErrMissingSchemeNonRelativeURL)
			} else if base != nil && base.HasOpaquePath() && r == '#' {
				url.Scheme = base.Scheme
				url.Opaque = base.Opaque
				url.set(flagOpaquePath)
				if base.HasQuery() {
					url.setQuery(base.Query)
				}
				url.setFragment("")
				state = stateFragment
			} else if base != nil && base.Scheme != "file" {
				state = stateRelative
				c.rewindLast()
			} else {
				state = stateFile
				c.rewindLast()
			}

		case stateSpecialRelativeOrAuthority:
			if r == '/' && c.remainingStartsWith("/") {
				state = stateSpecialAuthorityIgnoreSlashes
				c.next()
			} else {
				p.report(ErrInvalidReverseSolidus)
				state = stateRelative
				c.rewindLast()
			}

		case statePathOrAuthority:
			if r == '/' {
				state = stateAuthority
			} else {
				state = statePath
				c.rewindLast()
			}

		case stateRelative:
			url.Scheme = base.Scheme
			switch {
			case c.eof:
				copyAuthorityAndPath(url, base)
			case r == '/':
				state = stateRelativeSlash
			case r == '?':
				copyAuthorityAndPath(url, base)
				url.setQuery("")
				state = stateQuery
			case r == '#':
				copyAuthorityAndPath(url, base)
				url.setFragment("")
				state = stateFragment
			case url.IsSpecial() && r == '\\':
				p.report(ErrInvalidReverseSolidus)
				state = stateRelativeSlash
			default:
				copyAuthority(url, base)
				url.Path = append([]string(nil), base.Path...)
				url.ShortenPath()
				state = statePath
				c.rewindLast()
			}

		case stateRelativeSlash:
			switch {
			case url.IsSpecial() && (r == '/' || r == '\\'):
				if r == '\\' {
					p.report(ErrInvalidReverseSolidus)
				}
				state = stateSpecialAuthorityIgnoreSlashes
			case r == '/':
				state = stateAuthority
			default:
				copyAuthority(url, base)
				state = statePath
				c.rewindLast()
			}

		case stateSpecialAuthoritySlashes:
			if r == '/' && c.remainingStartsWith("/") {
				state = stateSpecialAuthorityIgnoreSlashes
				c.next()
			} else {
				p.report(ErrInvalidReverseSolidus)
				state = stateSpecialAuthorityIgnoreSlashes
				c.rewindLast()
			}

		case stateSpecialAuthorityIgnoreSlashes:
			if r != '/' && r != '\\' {
				state = stateAuthority
				c.rewindLast()
			} else {
				p.report(ErrInvalidReverseSolidus)
			}

		case stateAuthority:
			if r == '@' {
				p.report(ErrInvalidCredentials)
				if atFlag {
					old := buf.String()
					buf.Reset()
					buf.WriteString("%40")
					buf.WriteString(old)
				}
				atFlag = true
				bc := newCursor(buf.String())
				for bc.i < len(bc.r) {
					bi := bc.next()
					if bi == ':' && !passwordSeenFlag {
						passwordSeenFlag = true
						continue
					}
					enc := pctenc.Encode(string(bi), pctenc.UserinfoSet)
					if passwordSeenFlag {
						url.Password += enc
					} else {
						url.Username += enc
					}
				}
				url.setUsername(url.Username)
				url.setPassword(url.Password)
				buf.Reset()
			} else if c.eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\') {
				if atFlag && buf.Len() == 0 {
					return p.fail(ErrHostMissing)
				}
				c.rewind(len([]rune(buf.String())) + 1)
				buf.Reset()
				state = stateHost
			} else {
				buf.WriteRune(r)
			}

		case stateHost, stateHostname:
			if overridden && url.Scheme == "file" {
				c.rewindLast()
				state = stateFileHost
			} else if r == ':' && !bracketFlag {
				if buf.Len() == 0 {
					return p.fail(ErrHostMissing)
				}
				host, herr := parseHost(buf.String(), !url.IsSpecial())
				if herr != ErrOK {
					return p.fail(herr)
				}
				url.setHost(host)
				buf.Reset()
				state = statePort
				if override == stateHostname {
					return url, nil
				}
			} else if c.eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\') {
				c.rewindLast()
				if url.IsSpecial() && buf.Len() == 0 {
					return p.fail(ErrHostMissing)
				} else if overridden && buf.Len() == 0 && (url.HasCredentials() || url.HasPort()) {
					return p.fail(ErrIgnored)
				}
				host, herr := parseHost(buf.String(), !url.IsSpecial())
				if herr != ErrOK {
					return p.fail(herr)
				}
				url.setHost(host)
				buf.Reset()
				state = statePathStart
				if overridden {
					return url, nil
				}
			} else {
				if r == '[' {
					bracketFlag = true
				} else if r == ']' {
					bracketFlag = false
				}
				buf.WriteRune(r)
			}

		case statePort:
			switch {
			case isASCIIDigitRune(r):
				buf.WriteRune(r)
			case c.eof || r == '/' || r == '?' || r == '#' || (url.IsSpecial() && r == '\\') || overridden:
				if buf.Len() > 0 {
					n, convErr := strconv.Atoi(buf.String())
					if convErr != nil || n > 65535 {
						return p.fail(ErrPortOutOfRange)
					}
					url.setPort(n)
					cleanDefaultPort(url)
					buf.Reset()
				}
				if overridden {
					return url, nil
				}
				state = statePathStart
				c.rewindLast()
			default:
				return p.fail(ErrPortInvalid)
			}

		case stateFile:
			url.Scheme = "file"
			url.setHost(Host{Type: HostEmpty})
			switch {
			case r == '/' || r == '\\':
				if r == '\\' {
					p.report(ErrInvalidReverseSolidus)
				}
				state = stateFileSlash
			case base != nil && base.Scheme == "file":
				switch {
				case c.eof:
					url.setHost(base.Host)
					url.Path = append([]string(nil), base.Path...)
					if base.HasQuery() {
						url.setQuery(base.Query)
					}
				case r == '?':
					url.setHost(base.Host)
					url.Path = append([]string(nil), base.Path...)
					url.setQuery("")
					state = stateQuery
				case r == '#':
					url.setHost(base.Host)
					url.Path = append([]string(nil), base.Path...)
					if base.HasQuery() {
						url.setQuery(base.Query)
					}
					url.setFragment("")
					state = stateFragment
				default:
					if !startsWithAWindowsDriveLetter(c.remainingFrom()) {
						url.setHost(base.Host)
						url.Path = append([]string(nil), base.Path...)
						url.ShortenPath()
					} else {
						p.report(ErrFileInvalidWindowsDriveLetter)
					}
					state = statePath
					c.rewindLast()
				}
			default:
				state = statePath
				c.rewindLast()
			}

		case stateFileSlash:
			if r == '/' || r == '\\' {
				if r == '\\' {
					p.report(ErrInvalidReverseSolidus)
				}
				state = stateFileHost
			} else {
				if base != nil && base.Scheme == "file" && !startsWithAWindowsDriveLetter(c.remainingFrom()) {
					if len(base.Path) > 0 && isNormalizedWindowsDriveLetter(base.Path[0]) {
						url.Path = append(url.Path, base.Path[0])
					} else {
						url.setHost(base.Host)
					}
				}
				state = statePath
				c.rewindLast()
			}

		case stateFileHost:
			if c.eof || r == '/' || r == '\\' || r == '?' || r == '#' {
				c.rewindLast()
				switch {
				case !overridden && isWindowsDriveLetter(buf.String()):
					p.report(ErrFileInvalidWindowsDriveLetterHost)
					state = statePath
				case buf.Len() == 0:
					url.setHost(Host{Type: HostEmpty})
					if overridden {
						return url, nil
					}
					state = statePathStart
				default:
					host, herr := parseHost(buf.String(), !url.IsSpecial())
					if herr != ErrOK {
						return p.fail(herr)
					}
					if host.Type == HostDomain && host.Serial == "localhost" {
						host = Host{Type: HostEmpty}
					}
					url.setHost(host)
					if overridden {
						return url, nil
					}
					buf.Reset()
					state = statePathStart
				}
			} else {
				buf.WriteRune(r)
			}

		case statePathStart:
			switch {
			case url.IsSpecial():
				if r == '\\' {
					p.report(ErrInvalidReverseSolidus)
				}
				state = statePath
				if r != '/' && r != '\\' {
					c.rewindLast()
				}
			case !overridden && r == '?':
				url.setQuery("")
				state = stateQuery
			case !overridden && r == '#':
				url.setFragment("")
				state = stateFragment
			case !c.eof:
				state = statePath
				if r != '/' {
					c.rewindLast()
				}
			}

		case statePath:
			atSegmentEnd := c.eof || r == '/' || (url.IsSpecial() && r == '\\') ||
				(!overridden && (r == '?' || r == '#'))
			if atSegmentEnd {
				if url.IsSpecial() && r == '\\' {
					p.report(ErrInvalidReverseSolidus)
				}
				seg := buf.String()
				switch {
				case isDoubleDotPathSegment(seg):
					url.ShortenPath()
					if r != '/' && !(url.IsSpecial() && r == '\\') {
						url.Path = append(url.Path, "")
					}
				case isSingleDotPathSegment(seg):
					if r != '/' && !(url.IsSpecial() && r == '\\') {
						url.Path = append(url.Path, "")
					}
				default:
					if url.Scheme == "file" && len(url.Path) == 0 && isWindowsDriveLetter(seg) {
						if url.HasHost() && url.Host.Serial != "" {
							p.report(ErrFileInvalidWindowsDriveLetterHost)
							url.setHost(Host{Type: HostEmpty})
						}
						seg = seg[:1] + ":" + seg[2:]
					}
					url.Path = append(url.Path, seg)
				}
				buf.Reset()
				if url.Scheme == "file" && (c.eof || r == '?' || r == '#') {
					for len(url.Path) > 1 && url.Path[0] == "" {
						p.report(ErrInvalidReverseSolidus)
						url.Path = url.Path[1:]
					}
				}
				if r == '?' {
					url.setQuery("")
					state = stateQuery
				}
				if r == '#' {
					url.setFragment("")
					state = stateFragment
				}
			} else {
				if !isURLCodePoint(r) && r != '%' {
					p.report(ErrInvalidURLUnit)
				}
				if r == '%' && c.atInvalidPercentEncoding() {
					p.report(ErrInvalidURLUnit)
				}
				buf.Write(pctenc.EncodeRune(nil, r, pctenc.PathSet))
			}

		case stateOpaquePath:
			switch r {
			case '?':
				url.setQuery("")
				state = stateQuery
			case '#':
				url.setFragment("")
				state = stateFragment
			default:
				if !c.eof {
					if !isURLCodePoint(r) && r != '%' {
						p.report(ErrInvalidURLUnit)
					}
					if r == '%' && c.atInvalidPercentEncoding() {
						p.report(ErrInvalidURLUnit)
					}
					url.Opaque += string(pctenc.EncodeRune(nil, r, pctenc.C0Set))
				}
			}

		case stateQuery:
			if !overridden && r == '#' {
				url.setFragment("")
				state = stateFragment
			} else if !c.eof {
				if !isURLCodePoint(r) && r != '%' {
					p.report(ErrInvalidURLUnit)
				}
				if r == '%' && c.atInvalidPercentEncoding() {
					p.report(ErrInvalidURLUnit)
				}
				set := pctenc.QuerySet
				if url.IsSpecial() {
					set = pctenc.SpecialQuerySet
				}
				url.Query += string(pctenc.EncodeRune(nil, r, set))
			}

		case stateFragment:
			if !c.eof {
				if !isURLCodePoint(r) && r != '%' {
					p.report(ErrInvalidURLUnit)
				}
				if r == '%' && c.atInvalidPercentEncoding() {
					p.report(ErrInvalidURLUnit)
				}
				url.Fragment += string(pctenc.EncodeRune(nil, r, pctenc.FragmentSet))
			}
		}

		if c.eof {
			break
		}
	}

	url.set(flagValid)
	return url, nil
}

func (c *cursor) rewind(n int) {
	if c.eof {
		// next() does not advance past the end, so an EOF read left i one
		// short of where a code point read would have left it.
		n--
	}
	c.i -= n
	if c.i < 0 {
		c.i = 0
	}
	c.eof = false
}

func copyAuthority(url, base *Record) {
	url.setUsername(base.Username)
	url.setPassword(base.Password)
	url.setHost(base.Host)
	if base.HasPort() {
		url.setPort(base.Port)
	}
}

func copyAuthorityAndPath(url, base *Record) {
	copyAuthority(url, base)
	url.Path = append([]string(nil), base.Path...)
	if base.HasQuery() {
		url.setQuery(base.Query)
	}
}

func cleanDefaultPort(url *Record) {
	if url.HasPort() && url.Port == defaultPortFor(url.Scheme) {
		url.clearPort()
	}
}

func isC0OrSpace(r rune) bool { return r <= 0x20 }

func stripTabsAndNewlines(s string) string {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != '\t' && r != '\n' && r != '\r' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlpha(r rune) bool { return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' }

func isASCIIDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func isSchemeRune(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigitRune(r) || r == '+' || r == '-' || r == '.'
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// isSingleDotPathSegment implements spec §4.9's "single-dot path
// segment": the literal "." or any of its percent-encoded spellings
// "%2e"/"%2E", compared ASCII-case-insensitively.
func isSingleDotPathSegment(seg string) bool {
	return seg == "." || isPercentEncodedDot(seg)
}

// isDoubleDotPathSegment implements spec §4.9's "double-dot path
// segment": ".." or any mix of a literal "." and a percent-encoded
// "%2e"/"%2E" across the two dots, e.g. ".%2e", "%2e.", "%2e%2e".
func isDoubleDotPathSegment(seg string) bool {
	switch {
	case seg == "..":
		return true
	case len(seg) == 6: // "%2e%2e"
		return isPercentEncodedDot(seg[:3]) && isPercentEncodedDot(seg[3:])
	case len(seg) == 4 && seg[0] == '.': // ".%2e"
		return isPercentEncodedDot(seg[1:])
	case len(seg) == 4 && seg[3] == '.': // "%2e."
		return isPercentEncodedDot(seg[:3])
	default:
		return false
	}
}

// isPercentEncodedDot reports whether s is the three-byte percent-encoded
// spelling of a single "." (i.e. "%2e" or "%2E", case-insensitive).
func isPercentEncodedDot(s string) bool {
	return len(s) == 3 && s[0] == '%' && s[1] == '2' && (s[2] == 'e' || s[2] == 'E')
}

// isURLCodePoint implements spec §2's URL-code-point definition: ASCII
// alphanumerics, a fixed punctuation set, and non-ASCII outside the
// surrogate and noncharacter ranges.
func isURLCodePoint(r rune) bool {
	switch {
	case isASCIIAlpha(r) || isASCIIDigitRune(r):
		return true
	case strings.ContainsRune("!$&'()*+,-./:;=?@_~", r):
		return true
	case r < 0x80:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r >= 0xFDD0 && r <= 0xFDEF:
		return false
	case r&0xFFFE == 0xFFFE:
		return false
	case r > 0x10FFFF:
		return false
	default:
		return true
	}
}
