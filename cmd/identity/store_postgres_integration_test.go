package identity

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parley/cmd/identity/ids"
)

// Integration tests are opt-in and require PARLEY_DATABASE_URL.
// When Postgres is unreachable in local runs, these tests skip.

func TestPostgresStore_CreateAccount_EmailConflict_CaseInsensitive(t *testing.T) {
	t.Parallel()

	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := mustCreateTestSchema(t, pool)
	t.Cleanup(func() { mustDropSchema(t, pool, schema) })
	mustApplyAccountSchema(t, pool, schema)

	s, err := NewPostgresStore(pool, WithSchema(schema))
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err = s.CreateAccount(ctx, CreateAccountInput{
		Email:        "User@Example.com",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		Now:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create account 1: %v", err)
	}

	_, err = s.CreateAccount(ctx, CreateAccountInput{
		Email:        "uSER@eXAMPLE.COM",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		Now:          time.Now().UTC(),
	})
	var taken EmailTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("expected EmailTakenError, got %v", err)
	}
}

func TestPostgresStore_FindAndDelete(t *testing.T) {
	t.Parallel()

	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := mustCreateTestSchema(t, pool)
	t.Cleanup(func() { mustDropSchema(t, pool, schema) })
	mustApplyAccountSchema(t, pool, schema)

	s, err := NewPostgresStore(pool, WithSchema(schema))
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	created, err := s.CreateAccount(ctx, CreateAccountInput{
		Email:        "find@example.com",
		PasswordHash: "hash-placeholder",
		Now:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	byEmail, err := s.FindByEmail(ctx, "FIND@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("FindByEmail id = %q, want %q", byEmail.ID, created.ID)
	}

	byID, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.EmailNorm != "find@example.com" {
		t.Fatalf("FindByID email_norm = %q", byID.EmailNorm)
	}

	deleted, err := s.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("DeleteByID returned %q, want %q", deleted.ID, created.ID)
	}

	if _, err := s.FindByID(ctx, created.ID); !IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := s.DeleteByID(ctx, created.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func mustOpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	raw := strings.TrimSpace(os.Getenv("PARLEY_DATABASE_URL"))
	if raw == "" {
		t.Skip("integration test skipped: PARLEY_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(raw)
	if err != nil {
		t.Fatalf("parse PARLEY_DATABASE_URL: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer pingCancel()

	c, err := pool.Acquire(pingCtx)
	if err != nil {
		pool.Close()
		if shouldSkipIntegration(err) {
			t.Skipf("integration test skipped: Postgres unreachable: %v", err)
		}
		t.Fatalf("acquire: %v", err)
	}
	c.Release()

	return pool
}

func shouldSkipIntegration(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func mustCreateTestSchema(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id, err := ids.NewULID(time.Now().UTC())
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	schema := "parley_it_" + strings.ToLower(id)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, `CREATE SCHEMA `+pgIdent1(schema)); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return schema
}

func mustDropSchema(t *testing.T, pool *pgxpool.Pool, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+pgIdent1(schema)+` CASCADE`)
}

func mustApplyAccountSchema(t *testing.T, pool *pgxpool.Pool, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ddl := `
	CREATE TABLE ` + pgIdent1(schema) + `.accounts (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		email_norm    TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_accounts_email_norm UNIQUE (email_norm)
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
}

func pgIdent1(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
