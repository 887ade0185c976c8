package pctenc

import "testing"

func TestEncodeFragmentSet(t *testing.T) {
	cases := []struct{ in, want string }{
		{"hello", "hello"},
		{"a b", "a%20b"},
		{`a"b`, "a%22b"},
		{"a<b>c", "a%3Cb%3Ec"},
		{"a`b", "a%60b"},
	}
	for _, c := range cases {
		if got := Encode(c.in, FragmentSet); got != c.want {
			t.Errorf("Encode(%q, FragmentSet) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEncodeUserinfoSetIncludesMoreThanPath(t *testing.T) {
	if got := Encode("a/b", UserinfoSet); got != "a%2Fb" {
		t.Errorf("Encode(a/b, UserinfoSet) = %q, want a%%2Fb", got)
	}
	if got := Encode("a/b", PathSet); got != "a/b" {
		t.Errorf("Encode(a/b, PathSet) = %q, want a/b (path set allows '/')", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := "hello world & friends"
	enc := Encode(in, ComponentSet)
	if got := Decode(enc); got != in {
		t.Errorf("Decode(Encode(%q)) = %q", in, got)
	}
}

func TestDecodeUnmatchedPercent(t *testing.T) {
	if got := Decode("100% sure"); got != "100% sure" {
		t.Errorf("Decode(literal %%) = %q, want unchanged", got)
	}
}

func TestIsForbiddenHostCodePoint(t *testing.T) {
	for _, r := range []rune{0x00, ' ', '#', '/', ':', '?', '@', '['} {
		if !IsForbiddenHostCodePoint(r) {
			t.Errorf("expected %q to be a forbidden host code point", r)
		}
	}
	if IsForbiddenHostCodePoint('a') {
		t.Error("'a' should not be forbidden")
	}
}

func TestIsASCIIDomainByte(t *testing.T) {
	if !IsASCIIDomainByte('a') || !IsASCIIDomainByte('-') {
		t.Error("expected common domain bytes to pass")
	}
	if IsASCIIDomainByte('/') || IsASCIIDomainByte('%') || IsASCIIDomainByte(0x01) {
		t.Error("expected forbidden bytes to fail")
	}
}
