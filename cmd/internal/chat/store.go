package chat

import (
	"context"
	"time"
)

// Conversation is a pairwise channel between two accounts.
// The unordered pair {SenderID, ReceiverID} is unique across all
// conversations; rows are never updated or deleted.
type Conversation struct {
	ID         string
	SenderID   string
	ReceiverID string
	StartedAt  time.Time
}

// Message is an immutable message within a conversation. SentAt is
// server-assigned at insert time and imposes the retrieval order.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	SentAt         time.Time
}

// StartInput describes a start-conversation request.
type StartInput struct {
	SenderID   string
	ReceiverID string
	Now        time.Time
}

// SendMessageInput describes a message append request.
type SendMessageInput struct {
	SenderID       string
	ConversationID string
	Content        string
	Now            time.Time
}

// Store is the conversation/message persistence boundary.
//
// Implementations must be safe for concurrent use. The pairing
// constraint is enforced in both orientations; the Postgres store's
// unique index on the normalized pair is the source of truth when
// concurrent Start calls race past the existence check.
type Store interface {
	// Start creates a conversation between two distinct accounts.
	// Fails with ErrSameSenderAndReceiver when the ids are equal and
	// with AlreadyExistsError (carrying the existing id) when a
	// conversation exists for the pair in either orientation.
	Start(ctx context.Context, in StartInput) (string, error)

	// SendMessage appends a message with a server-assigned timestamp
	// and returns its id. Sender membership in the conversation is not
	// verified here; callers enforce it.
	SendMessage(ctx context.Context, in SendMessageInput) (string, error)

	// AllMessages returns every message in the conversation in
	// ascending sent_at order; an empty slice when there are none.
	AllMessages(ctx context.Context, conversationID string) ([]Message, error)

	// MessagesAfter returns messages with sent_at strictly greater
	// than after, ascending. Designed for incremental client polling.
	MessagesAfter(ctx context.Context, conversationID string, after time.Time) ([]Message, error)

	// ConversationsFor returns every conversation where the account is
	// either participant. Order unspecified.
	ConversationsFor(ctx context.Context, accountID string) ([]Conversation, error)
}
