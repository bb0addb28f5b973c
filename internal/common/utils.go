package common

import "strings"

// NotAvailable is shown for facts an upstream did not provide.
const NotAvailable = "N/A"

// HasAny returns true if s contains any of the substrings (case-sensitive).
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// OrNA returns s, or NotAvailable when s is blank.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
