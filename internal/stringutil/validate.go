package stringutil

import (
	"net/url"
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks if s is a valid email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidURI checks if s is an absolute URI, i.e. it has a scheme. The
// authority may be empty, as in "file:///etc/hosts".
func IsValidURI(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

// IsValidDate checks if s is an ISO-8601 calendar date (YYYY-MM-DD) that
// names a real day, so "2024-02-30" and "2024-13-40" are rejected.
func IsValidDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// IsValidDateTime checks if s is an RFC 3339 timestamp.
func IsValidDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
