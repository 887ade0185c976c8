package utf

import "testing"

func TestDecodeUTF8(t *testing.T) {
	cases := []struct {
		name  string
		input string
		at    int
		want  rune
		size  int
		valid bool
	}{
		{"ascii", "abc", 0, 'a', 1, true},
		{"two-byte", "\xc3\xa9", 0, 'é', 2, true},
		{"three-byte", "\xe2\x82\xac", 0, '€', 3, true},
		{"four-byte", "\xf0\x9f\x98\x80", 0, '😀', 4, true},
		{"truncated", "\xe2\x82", 0, 0, 0, false},
		{"overlong", "\xc0\x80", 0, 0, 0, false},
		{"lone-continuation", "\x80", 0, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, size, valid := DecodeUTF8(c.input, c.at)
			if valid != c.valid {
				t.Fatalf("valid = %v, want %v", valid, c.valid)
			}
			if !valid {
				return
			}
			if r != c.want || size != c.size {
				t.Fatalf("got (%q, %d), want (%q, %d)", r, size, c.want, c.size)
			}
		})
	}
}

func TestRepairUTF8(t *testing.T) {
	out, ok := RepairUTF8("hello")
	if !ok || out != "hello" {
		t.Fatalf("RepairUTF8(clean) = (%q, %v)", out, ok)
	}
	out, ok = RepairUTF8("a\x80b")
	if ok {
		t.Fatalf("expected ok=false for malformed input")
	}
	if out != "a�b" {
		t.Fatalf("RepairUTF8 = %q, want %q", out, "a�b")
	}
}

func TestCompareUTF16CodeUnits(t *testing.T) {
	if CompareUTF16CodeUnits("a", "b") >= 0 {
		t.Fatal("expected a < b")
	}
	if CompareUTF16CodeUnits("b", "a") <= 0 {
		t.Fatal("expected b > a")
	}
	if CompareUTF16CodeUnits("same", "same") != 0 {
		t.Fatal("expected equal strings to compare equal")
	}
}

func TestEncodeUTF16Surrogates(t *testing.T) {
	units := ToUTF16("😀")
	if len(units) != 2 {
		t.Fatalf("expected a surrogate pair, got %d units", len(units))
	}
	if units[0] < 0xD800 || units[0] > 0xDBFF {
		t.Fatalf("expected high surrogate, got %x", units[0])
	}
	if units[1] < 0xDC00 || units[1] > 0xDFFF {
		t.Fatalf("expected low surrogate, got %x", units[1])
	}
}
