package punycode

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		runes []rune
		ace   string
	}{
		{"all-basic", []rune("ietf"), "ietf-"},
		{"bucher-de", []rune("bücher"), "bcher-kva"},
		{"munich", []rune("münchen"), "mnchen-3ya"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, status := Encode(c.runes)
			if status != Ok {
				t.Fatalf("Encode status = %v", status)
			}
			if got != c.ace {
				t.Fatalf("Encode(%q) = %q, want %q", string(c.runes), got, c.ace)
			}
			back, status := Decode(got)
			if status != Ok {
				t.Fatalf("Decode status = %v", status)
			}
			if string(back) != string(c.runes) {
				t.Fatalf("round trip = %q, want %q", string(back), string(c.runes))
			}
		})
	}
}

func TestDecodeBadInput(t *testing.T) {
	if _, status := Decode("-"); status != Ok {
		t.Fatalf("expected empty decode of lone delimiter to succeed, got %v", status)
	}
	if _, status := Decode("a-!"); status == Ok {
		t.Fatal("expected a non-digit byte after the delimiter to fail")
	}
}
