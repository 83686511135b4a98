package chat

import (
	"errors"
	"fmt"
)

// Sentinel error kinds (stable for errors.Is and for mapping to API status codes).
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")

	// ErrSameSenderAndReceiver rejects starting a conversation with oneself.
	ErrSameSenderAndReceiver = errors.New("sender and receiver are the same account")
)

// AlreadyExistsError reports that a conversation between the pair
// already exists, in either orientation. It carries the existing
// conversation id so idempotent callers can treat it as success.
type AlreadyExistsError struct {
	ConversationID string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("%v: conversation %s already exists for this pair", ErrConflict, e.ConversationID)
}

func (e AlreadyExistsError) Unwrap() error { return ErrConflict }

// NotFoundError reports a missing referenced resource.
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

// IsConflict reports whether err represents ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
