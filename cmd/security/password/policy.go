package password

import (
	"unicode"
	"unicode/utf8"
)

// Validate checks the signup strength policy. It does not mutate input.
//
// Length is checked first and reported alone; the four character-class
// requirements are evaluated together so the returned WeakPasswordError
// states exactly which classes were satisfied.
func (c Config) Validate(password string) error {
	// Count characters (runes), not bytes, to be user-friendly.
	n := utf8.RuneCountInString(password)
	if n < c.Policy.MinLength {
		return TooShortError{MinLength: c.Policy.MinLength, ActualLength: n}
	}

	var hasLower, hasUpper, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasNumber = true
		case !unicode.IsLetter(r):
			// Special means non-alphanumeric; uncased letters count as
			// neither class.
			hasSpecial = true
		}
	}

	if !hasLower || !hasUpper || !hasNumber || !hasSpecial {
		return WeakPasswordError{
			HasLowercase: hasLower,
			HasUppercase: hasUpper,
			HasNumber:    hasNumber,
			HasSpecial:   hasSpecial,
		}
	}

	return nil
}
