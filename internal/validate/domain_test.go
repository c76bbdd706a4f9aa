package validate

import "testing"

func TestDomain(t *testing.T) {
	tests := []struct {
		domain string
		valid  bool
	}{
		{"example.com", true},
		{"sub.example.co.uk", true},
		{"xn--nxasmq6b.example", true},
		{"a.io", true},
		{"example", true}, // single label is well-formed, TLD checks are not our job

		{"", false},
		{"-bad.example.com", false},
		{"bad-.example.com", false},
		{"bad..example.com", false},
		{"bad_domain.example.com", false},
		{"localhost", false},
		{"localhost.example", false},
		{"127.0.0.1", false},
		{"10.0.0.1", false},
		{"192.168.1.1", false},
		{"172.16.0.1", false},
	}

	for _, tt := range tests {
		if got := Domain(tt.domain); got != tt.valid {
			t.Errorf("Domain(%q) = %v, expected %v", tt.domain, got, tt.valid)
		}
	}
}

func TestDomainRejectsOverlongName(t *testing.T) {
	long := ""
	for len(long) < 260 {
		long += "abcdefgh."
	}
	long += "com"
	if Domain(long) {
		t.Error("Name over 253 octets should be rejected")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Example.COM", "example.com"},
		{"  example.com  ", "example.com"},
		{"example.com.", "example.com"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
