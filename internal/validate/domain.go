// Package validate screens domain names submitted for analysis before any
// DNS traffic is generated on their behalf.
package validate

import (
	"regexp"
	"strings"
)

// Each label starts and ends with an alphanumeric and stays within the
// 63-octet DNS label limit.
var domainPattern = regexp.MustCompile(
	`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)

// Prefixes of loopback and RFC 1918 names that must never be probed.
var privatePrefixes = []string{
	"localhost",
	"127.0.0.1",
	"0.0.0.0",
	"10.",
	"192.168.",
	"172.",
}

// Domain reports whether the given name is a well-formed public domain.
// Private and loopback names are rejected so the service cannot be used to
// probe internal infrastructure.
func Domain(domain string) bool {
	if domain == "" || len(domain) > 253 {
		return false
	}
	if !domainPattern.MatchString(domain) {
		return false
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(domain, prefix) {
			return false
		}
	}
	return true
}

// Normalize lowercases a domain and strips surrounding whitespace and a
// single trailing dot, so cache and rate-limit keys are consistent.
func Normalize(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	return strings.TrimSuffix(domain, ".")
}
