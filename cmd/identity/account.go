package identity

import (
	"context"
	"time"
)

// Account is Parley's canonical principal.
//
// PasswordHash is the PHC-encoded Argon2id blob; it never leaves the
// process through the transport layer. Email is immutable after
// creation.
type Account struct {
	ID           string
	Email        string
	EmailNorm    string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateAccountInput describes an account registration. Email must
// already be syntax-validated; PasswordHash must be a finished hash,
// never a plain password.
type CreateAccountInput struct {
	Email        string
	PasswordHash string
	Now          time.Time
}

// Store is the account persistence boundary.
//
// All implementations must surface a missing row as a NotFoundError
// (distinguishable from other I/O failures) and an email uniqueness
// violation as an EmailTakenError. The store's unique index on the
// normalized email is the source of truth for uniqueness; callers'
// pre-checks are advisory.
type Store interface {
	// CreateAccount persists a new account with a generated id.
	CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error)

	// FindByEmail looks up an account by normalized email.
	FindByEmail(ctx context.Context, email string) (Account, error)

	// FindByID looks up an account by id.
	FindByID(ctx context.Context, id string) (Account, error)

	// DeleteByID removes an account and returns the deleted row.
	// Administrative/test path.
	DeleteByID(ctx context.Context, id string) (Account, error)
}
