package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"parley/cmd/identity/ids"
)

// PostgresStore implements conversation/message persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - The conversations table carries a unique index on
//   (LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id));
//   that index, not the pre-check, is the source of truth for pairing.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

// WithSchema sets the DB schema used by the chat store (default "parley").
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return errors.New("chat: empty schema")
		}
		if !isValidPGIdent(schema) {
			return errors.New("chat: invalid schema identifier")
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
		return nil, errors.New("chat: nil pool")
	}
	return st, nil
}

// Start creates a conversation between two distinct accounts.
func (s *PostgresStore) Start(ctx context.Context, in StartInput) (string, error) {
	const op = "chat.Start"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	sender := strings.TrimSpace(in.SenderID)
	receiver := strings.TrimSpace(in.ReceiverID)
	if sender == "" || receiver == "" {
		return "", ErrInvalidInput
	}
	if sender == receiver {
		return "", ErrSameSenderAndReceiver
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Advisory pre-check in both orientations; the richer error with
	// the existing id comes from here in the common case.
	if existing, ok, err := s.pairExists(ctx, sender, receiver); err != nil {
		return "", err
	} else if ok {
		return "", AlreadyExistsError{ConversationID: existing}
	}

	id, err := ids.NewUUID()
	if err != nil {
		return "", err
	}

	conversations := pgIdent(s.schema, "conversations")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+conversations+` (id, sender_id, receiver_id, started_at)
		 VALUES ($1, $2, $3, $4)`,
		id, sender, receiver, now,
	)
	if err != nil {
		if pgIsUniqueViolation(err) {
			// Lost the race: surface the winner's id.
			if existing, ok, lookErr := s.pairExists(ctx, sender, receiver); lookErr == nil && ok {
				return "", AlreadyExistsError{ConversationID: existing}
			}
			return "", AlreadyExistsError{}
		}
		if pgIsForeignKeyViolation(err) {
			return "", NotFoundError{Op: op, Resource: "account"}
		}
		return "", err
	}

	return id, nil
}

// pairExists looks up a conversation for the pair in either orientation.
func (s *PostgresStore) pairExists(ctx context.Context, senderID, receiverID string) (string, bool, error) {
	conversations := pgIdent(s.schema, "conversations")

	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM `+conversations+`
		  WHERE (sender_id = $1 AND receiver_id = $2)
		     OR (sender_id = $2 AND receiver_id = $1)`,
		senderID, receiverID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

// SendMessage appends a message with a server-assigned timestamp.
// Sender membership in the conversation is not verified here; callers
// enforce it.
func (s *PostgresStore) SendMessage(ctx context.Context, in SendMessageInput) (string, error) {
	const op = "chat.SendMessage"

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.SenderID) == "" || strings.TrimSpace(in.ConversationID) == "" {
		return "", ErrInvalidInput
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return "", err
	}

	messages := pgIdent(s.schema, "messages")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+messages+` (id, conversation_id, sender_id, content, sent_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, in.ConversationID, in.SenderID, in.Content, now,
	)
	if err != nil {
		if pgIsForeignKeyViolation(err) {
			return "", NotFoundError{Op: op, Resource: "conversation"}
		}
		return "", err
	}

	return id, nil
}

// AllMessages returns every message in ascending sent_at order.
func (s *PostgresStore) AllMessages(ctx context.Context, conversationID string) ([]Message, error) {
	messages := pgIdent(s.schema, "messages")

	rows, err := s.pool.Query(ctx,
		`SELECT id, conversation_id, sender_id, content, sent_at
		   FROM `+messages+`
		  WHERE conversation_id = $1
		  ORDER BY sent_at ASC, id ASC`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MessagesAfter returns messages with sent_at strictly greater than after.
func (s *PostgresStore) MessagesAfter(ctx context.Context, conversationID string, after time.Time) ([]Message, error) {
	messages := pgIdent(s.schema, "messages")

	rows, err := s.pool.Query(ctx,
		`SELECT id, conversation_id, sender_id, content, sent_at
		   FROM `+messages+`
		  WHERE conversation_id = $1 AND sent_at > $2
		  ORDER BY sent_at ASC, id ASC`,
		conversationID, after,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ConversationsFor returns conversations where the account is either participant.
func (s *PostgresStore) ConversationsFor(ctx context.Context, accountID string) ([]Conversation, error) {
	conversations := pgIdent(s.schema, "conversations")

	rows, err := s.pool.Query(ctx,
		`SELECT id, sender_id, receiver_id, started_at
		   FROM `+conversations+`
		  WHERE sender_id = $1 OR receiver_id = $1`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Conversation, 0)
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.SenderID, &c.ReceiverID, &c.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.SentAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func isValidPGIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
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

func pgIsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" // foreign_key_violation
}
