package identity

import (
	"net/mail"
	"strings"
)

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateEmail checks address syntax before any store access.
// Returns InvalidEmailError on failure.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidEmailError{Email: s}
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return InvalidEmailError{Email: s}
	}

	// Reject display-name forms ("Name <a@b.c>"); only the bare
	// address is an account email.
	if addr.Address != s {
		return InvalidEmailError{Email: s}
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return InvalidEmailError{Email: s}
	}

	return nil
}
