package chat

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"parley/cmd/identity/ids"
)

// InMemoryStore is a Store for tests and dev mode without a database.
// The mutex serializes the pair check and insert, so the race the
// Postgres store closes with its unique index cannot occur here.
type InMemoryStore struct {
	mu    sync.Mutex
	convs map[string]*memConversation // conversation id -> conversation + messages
	pairs map[string]string           // normalized pair key -> conversation id
}

type memConversation struct {
	conv Conversation
	msgs []Message
}

// NewInMemoryStore constructs an empty in-memory conversation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		convs: make(map[string]*memConversation),
		pairs: make(map[string]string),
	}
}

// pairKey normalizes an unordered pair into a stable map key.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Start creates a conversation between two distinct accounts.
func (s *InMemoryStore) Start(ctx context.Context, in StartInput) (string, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pairs[pairKey(sender, receiver)]; ok {
		return "", AlreadyExistsError{ConversationID: existing}
	}

	id, err := ids.NewUUID()
	if err != nil {
		return "", err
	}

	s.convs[id] = &memConversation{
		conv: Conversation{
			ID:         id,
			SenderID:   sender,
			ReceiverID: receiver,
			StartedAt:  now,
		},
	}
	s.pairs[pairKey(sender, receiver)] = id

	return id, nil
}

// SendMessage appends a message with a server-assigned timestamp.
func (s *InMemoryStore) SendMessage(ctx context.Context, in SendMessageInput) (string, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[in.ConversationID]
	if !ok {
		return "", NotFoundError{Op: op, Resource: "conversation"}
	}

	c.msgs = append(c.msgs, Message{
		ID:             id,
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Content:        in.Content,
		SentAt:         now,
	})

	return id, nil
}

// AllMessages returns every message in ascending sent_at order.
func (s *InMemoryStore) AllMessages(ctx context.Context, conversationID string) ([]Message, error) {
	return s.messages(ctx, conversationID, nil)
}

// MessagesAfter returns messages with sent_at strictly greater than after.
func (s *InMemoryStore) MessagesAfter(ctx context.Context, conversationID string, after time.Time) ([]Message, error) {
	return s.messages(ctx, conversationID, &after)
}

func (s *InMemoryStore) messages(ctx context.Context, conversationID string, after *time.Time) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	var snap []Message
	if c, ok := s.convs[conversationID]; ok {
		snap = append([]Message(nil), c.msgs...)
	}
	s.mu.Unlock()

	out := make([]Message, 0, len(snap))
	for _, m := range snap {
		if after != nil && !m.SentAt.After(*after) {
			continue
		}
		out = append(out, m)
	}

	// Stable: equal timestamps keep insertion order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })

	return out, nil
}

// ConversationsFor returns conversations where the account is either participant.
func (s *InMemoryStore) ConversationsFor(ctx context.Context, accountID string) ([]Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Conversation, 0)
	for _, c := range s.convs {
		if c.conv.SenderID == accountID || c.conv.ReceiverID == accountID {
			out = append(out, c.conv)
		}
	}
	return out, nil
}
