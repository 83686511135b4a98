package identity

import (
	"context"
	"sync"
	"time"

	"parley/cmd/identity/ids"
)

// InMemoryStore is a Store for tests and dev mode without a database.
// It enforces the same email uniqueness and not-found semantics as the
// Postgres store; the mutex closes the check+insert race that the
// Postgres store closes with its unique index.
type InMemoryStore struct {
	mu      sync.Mutex
	byID    map[string]Account
	byEmail map[string]string // email_norm -> id
}

// NewInMemoryStore constructs an empty in-memory account store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

// CreateAccount persists a new account with a generated id.
func (s *InMemoryStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	if in.Email == "" || in.PasswordHash == "" {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "email and password hash are required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewUUID()
	if err != nil {
		return Account{}, err
	}

	norm := NormalizeEmail(in.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[norm]; taken {
		return Account{}, EmailTakenError{Email: in.Email}
	}

	a := Account{
		ID:           id,
		Email:        in.Email,
		EmailNorm:    norm,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
	}
	s.byID[id] = a
	s.byEmail[norm] = id

	return a, nil
}

// FindByEmail looks up an account by normalized email.
func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	const op = "identity.FindByEmail"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return s.byID[id], nil
}

// FindByID looks up an account by id.
func (s *InMemoryStore) FindByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.FindByID"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return a, nil
}

// DeleteByID removes an account and returns the deleted row.
func (s *InMemoryStore) DeleteByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.DeleteByID"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	delete(s.byID, id)
	delete(s.byEmail, a.EmailNorm)
	return a, nil
}
