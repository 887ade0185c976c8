package ipaddr

import "testing"

func TestParseIPv4(t *testing.T) {
	cases := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"192.168.0.1", 0xC0A80001, false},
		{"0.0.0.0", 0, false},
		{"255.255.255.255", 0xFFFFFFFF, false},
		{"0x1", 1, false},
		{"0x", 0, false},
		{"1.2.3", (1 << 24) | (2 << 16) | 3, false},
		{"1.2", (1 << 24) | 2, false},
		{"1", 1, false},
		{"0300.0250.0.1", (192 << 24) | (168 << 16) | 1, false},
		{"1.2.3.4.5", 0, true},
		{"256.0.0.1", 0, true},
		{"1..2.3", 0, true},
		{"1.2.3.0x100000000", 0, true},
	}
	for _, c := range cases {
		got, _, err := ParseIPv4(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseIPv4(%q) expected error, got %#x", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseIPv4(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseIPv4(%q) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestParseIPv4TrailingDotIsNonFailure(t *testing.T) {
	addr, nonFailure, err := ParseIPv4("192.168.0.1.")
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if nonFailure == nil {
		t.Fatal("expected a non-failure error for the dropped trailing dot")
	}
	if addr != 0xC0A80001 {
		t.Fatalf("addr = %#x, want %#x", addr, 0xC0A80001)
	}
}

func TestSerializeIPv4(t *testing.T) {
	if got := SerializeIPv4(0xC0A80001); got != "192.168.0.1" {
		t.Fatalf("SerializeIPv4 = %q, want 192.168.0.1", got)
	}
	if got := SerializeIPv4(0); got != "0.0.0.0" {
		t.Fatalf("SerializeIPv4(0) = %q, want 0.0.0.0", got)
	}
}
