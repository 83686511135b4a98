package identity

import (
	"errors"
	"fmt"
)

// OpError is a typed operation error with a stable Op + Kind contract
// for callers and tests. Kind must be one of the sentinel kinds.
// Msg may include human-readable context; never secrets.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// InvalidEmailError reports an email that failed syntax validation.
// It is returned before any store access.
type InvalidEmailError struct {
	Email string
}

func (e InvalidEmailError) Error() string {
	return fmt.Sprintf("%v: email %q is not a valid address", ErrInvalidInput, e.Email)
}

func (e InvalidEmailError) Unwrap() error { return ErrInvalidInput }

// EmailTakenError reports a signup against an already-registered email.
type EmailTakenError struct {
	Email string
}

func (e EmailTakenError) Error() string {
	return fmt.Sprintf("%v: email %q already taken", ErrConflict, e.Email)
}

func (e EmailTakenError) Unwrap() error { return ErrConflict }

// EmailNotFoundError reports a signin against an unknown email.
type EmailNotFoundError struct {
	Email string
}

func (e EmailNotFoundError) Error() string {
	return fmt.Sprintf("%v: email %q", ErrNotFound, e.Email)
}

func (e EmailNotFoundError) Unwrap() error { return ErrNotFound }

// NotFoundError reports a missing row by primary key.
type NotFoundError struct {
	Op       string
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrNotFound)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrNotFound, e.Resource)
}

func (e NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err represents ErrNotFound (including the typed variants).
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err represents ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsInvalidInput reports whether err represents ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsWrongPassword reports whether err represents ErrWrongPassword.
func IsWrongPassword(err error) bool { return errors.Is(err, ErrWrongPassword) }
