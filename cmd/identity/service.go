package identity

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"parley/cmd/security/password"
	"parley/cmd/security/token"
)

// Service orchestrates signup and signin: validation, hashing,
// persistence, and session-token issuance. Both operations are
// single-shot pipelines with explicit failure short-circuiting; there
// are no intermediate persisted states.
type Service struct {
	log       *slog.Logger
	store     Store
	passwords password.Config
	tokens    *token.Manager
}

// NewService constructs the auth service.
func NewService(log *slog.Logger, store Store, passwords password.Config, tokens *token.Manager) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log:       log,
		store:     store,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Signup registers a new account and returns a session token for it.
//
// Pipeline: email syntax -> advisory uniqueness pre-check -> password
// strength -> hash + persist -> issue token. The pre-check is
// advisory: a concurrent duplicate insert still surfaces as
// EmailTakenError from the store's unique index.
//
// Known gap: if token issuance fails after the account row is
// persisted, the row remains and the error propagates; the caller
// must treat this as "account exists, no token" and sign in instead.
func (s *Service) Signup(ctx context.Context, email, pw string) (string, error) {
	email = strings.TrimSpace(email)

	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", EmailTakenError{Email: email}
	case IsNotFound(err):
		// Free to register.
	default:
		return "", err
	}

	if err := s.passwords.Validate(pw); err != nil {
		return "", err
	}

	hash, err := s.passwords.Hash(pw)
	if err != nil {
		s.log.Error("signup.hash_failed", "err", err)
		return "", err
	}

	acct, err := s.store.CreateAccount(ctx, CreateAccountInput{
		Email:        email,
		PasswordHash: hash,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	tok, _, err := s.tokens.Issue(acct.ID, time.Now().UTC())
	if err != nil {
		s.log.Error("signup.token_issue_failed", "account_id", acct.ID, "err", err)
		return "", err
	}

	s.log.Info("signup.ok", "account_id", acct.ID)
	return tok, nil
}

// Signin verifies credentials and returns a session token.
//
// Unknown emails are distinguished (EmailNotFoundError) from wrong
// passwords (ErrWrongPassword) at the lookup stage only; hardening
// against account enumeration is an explicit non-goal.
func (s *Service) Signin(ctx context.Context, email, pw string) (string, error) {
	email = strings.TrimSpace(email)

	acct, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return "", EmailNotFoundError{Email: email}
		}
		return "", err
	}

	ok, err := s.passwords.Verify(acct.PasswordHash, pw)
	if err != nil {
		// Malformed stored hash or algorithm failure: infrastructure,
		// never reported as a credential mismatch.
		s.log.Error("signin.verify_failed", "account_id", acct.ID, "err", err)
		return "", err
	}
	if !ok {
		return "", OpError{Op: "identity.Signin", Kind: ErrWrongPassword}
	}

	tok, _, err := s.tokens.Issue(acct.ID, time.Now().UTC())
	if err != nil {
		s.log.Error("signin.token_issue_failed", "account_id", acct.ID, "err", err)
		return "", err
	}

	s.log.Info("signin.ok", "account_id", acct.ID)
	return tok, nil
}

// DeleteAccount removes an account by id and returns the deleted row.
// Administrative/test path.
func (s *Service) DeleteAccount(ctx context.Context, id string) (Account, error) {
	return s.store.DeleteByID(ctx, id)
}
