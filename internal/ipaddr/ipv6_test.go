package ipaddr

import "testing"

func TestParseAndSerializeIPv6(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"::1", "::1"},
		{"::", "::"},
		{"2001:db8::1", "2001:db8::1"},
		{"2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1"},
		{"::ffff:192.168.0.1", "::ffff:c0a8:1"},
		{"1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8"},
		{"ff02::1", "ff02::1"},
		{"::1:2:3:4:5:6:7", "0:1:2:3:4:5:6:7"},
		{"1::3:4:5:6:7:8", "1:0:3:4:5:6:7:8"},
	}
	for _, c := range cases {
		pieces, err := ParseIPv6(c.in)
		if err != nil {
			t.Errorf("ParseIPv6(%q) unexpected error: %v", c.in, err)
			continue
		}
		got := SerializeIPv6(pieces)
		if got != c.want {
			t.Errorf("round trip %q -> %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseIPv6Errors(t *testing.T) {
	bad := []string{
		"",
		":",
		"1:2:3:4:5:6:7:8:9",
		"1::2::3",
		"gggg::1",
		"1:2:3:4:5:6:1.2.3.4.5",
		"1:2:3:4:5:6:7",
	}
	for _, in := range bad {
		if _, err := ParseIPv6(in); err == nil {
			t.Errorf("ParseIPv6(%q) expected an error", in)
		}
	}
}

func TestSerializeIPv6CompressesLongestRun(t *testing.T) {
	pieces := [8]uint16{0, 0, 1, 0, 0, 0, 0, 1}
	got := SerializeIPv6(pieces)
	if got != "0:0:1::1" {
		t.Fatalf("SerializeIPv6 = %q, want 0:0:1::1", got)
	}
}
