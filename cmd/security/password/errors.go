package password

import (
	"errors"
	"fmt"
)

// Public, stable errors for callers.
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrWeakPassword     = errors.New("weak password")
	ErrInvalidHash      = errors.New("invalid password hash")
)

// TooShortError reports a password below the policy minimum.
type TooShortError struct {
	MinLength    int
	ActualLength int
}

func (e TooShortError) Error() string {
	return fmt.Sprintf("%v: need at least %d characters, got %d", ErrPasswordTooShort, e.MinLength, e.ActualLength)
}

func (e TooShortError) Unwrap() error { return ErrPasswordTooShort }

// WeakPasswordError reports which of the four required character
// classes the password satisfied, so callers can tell the user exactly
// what is missing.
type WeakPasswordError struct {
	HasLowercase bool
	HasUppercase bool
	HasNumber    bool
	HasSpecial   bool
}

func (e WeakPasswordError) Error() string {
	return fmt.Sprintf("%v: lowercase=%t uppercase=%t number=%t special=%t",
		ErrWeakPassword, e.HasLowercase, e.HasUppercase, e.HasNumber, e.HasSpecial)
}

func (e WeakPasswordError) Unwrap() error { return ErrWeakPassword }
