package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"parley/cmd/identity/ids"
)

// PostgresStore implements account persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
// - The unique index on email_norm is the source of truth for email
//   uniqueness; 23505 is classified into EmailTakenError.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the account store (default "parley").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "parley",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

// CreateAccount persists a new account row with a generated id.
func (s *PostgresStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "email is required"}
	}
	if strings.TrimSpace(in.PasswordHash) == "" {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewUUID()
	if err != nil {
		return Account{}, err
	}

	emailNorm := NormalizeEmail(email)
	accounts := pgIdent(s.schema, "accounts")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+accounts+` (id, email, email_norm, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, email, emailNorm, in.PasswordHash, now,
	)
	if err != nil {
		if pgIsUniqueViolation(err) {
			return Account{}, EmailTakenError{Email: email}
		}
		return Account{}, err
	}

	return Account{
		ID:           id,
		Email:        email,
		EmailNorm:    emailNorm,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
	}, nil
}

// FindByEmail looks up an account by normalized email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	const op = "identity.FindByEmail"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}

	accounts := pgIdent(s.schema, "accounts")

	var a Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, email_norm, password_hash, created_at
		   FROM `+accounts+`
		  WHERE email_norm = $1`,
		NormalizeEmail(email),
	).Scan(&a.ID, &a.Email, &a.EmailNorm, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return a, nil
}

// FindByID looks up an account by id.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.FindByID"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}

	accounts := pgIdent(s.schema, "accounts")

	var a Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, email_norm, password_hash, created_at
		   FROM `+accounts+`
		  WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Email, &a.EmailNorm, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return a, nil
}

// DeleteByID removes an account and returns the deleted row.
func (s *PostgresStore) DeleteByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.DeleteByID"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}

	accounts := pgIdent(s.schema, "accounts")

	var a Account
	err := s.pool.QueryRow(ctx,
		`DELETE FROM `+accounts+`
		  WHERE id = $1
		  RETURNING id, email, email_norm, password_hash, created_at`,
		id,
	).Scan(&a.ID, &a.Email, &a.EmailNorm, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return a, nil
}

func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgIsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}
