package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStart_SameSenderAndReceiver(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.Start(context.Background(), StartInput{SenderID: "a", ReceiverID: "a"})
	if !errors.Is(err, ErrSameSenderAndReceiver) {
		t.Fatalf("expected ErrSameSenderAndReceiver, got %v", err)
	}
}

func TestStart_PairIsUniqueInBothOrientations(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	first, err := s.Start(ctx, StartInput{SenderID: "alice", ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err = s.Start(ctx, StartInput{SenderID: "alice", ReceiverID: "bob"})
	var exists AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
	if exists.ConversationID != first {
		t.Fatalf("carries %q, want first id %q", exists.ConversationID, first)
	}

	// Reversed orientation must hit the same conversation.
	_, err = s.Start(ctx, StartInput{SenderID: "bob", ReceiverID: "alice"})
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError for reversed pair, got %v", err)
	}
	if exists.ConversationID != first {
		t.Fatalf("reversed pair carries %q, want %q", exists.ConversationID, first)
	}
	if !IsConflict(err) {
		t.Fatalf("expected conflict kind")
	}
}

func TestSendMessage_UnknownConversation(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.SendMessage(context.Background(), SendMessageInput{
		SenderID:       "alice",
		ConversationID: "no-such-conversation",
		Content:        "hello",
	})
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMessages_OrderedAndFiltered(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	conv, err := s.Start(ctx, StartInput{SenderID: "alice", ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	contents := []string{"first", "second", "third"}
	for i, c := range contents {
		_, err := s.SendMessage(ctx, SendMessageInput{
			SenderID:       "alice",
			ConversationID: conv,
			Content:        c,
			Now:            base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SendMessage(%q): %v", c, err)
		}
	}

	all, err := s.AllMessages(ctx, conv)
	if err != nil {
		t.Fatalf("AllMessages: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, m := range all {
		if m.Content != contents[i] {
			t.Fatalf("message %d = %q, want %q", i, m.Content, contents[i])
		}
		if i > 0 && all[i].SentAt.Before(all[i-1].SentAt) {
			t.Fatalf("messages not ascending by sent_at")
		}
	}

	// Strictly-after filter: the first message's own timestamp is excluded.
	after, err := s.MessagesAfter(ctx, conv, all[0].SentAt)
	if err != nil {
		t.Fatalf("MessagesAfter: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("len = %d, want 2", len(after))
	}
	if after[0].Content != "second" || after[1].Content != "third" {
		t.Fatalf("unexpected window: %q, %q", after[0].Content, after[1].Content)
	}
}

func TestMessages_EmptyConversationIsNotAnError(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	conv, err := s.Start(ctx, StartInput{SenderID: "alice", ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	msgs, err := s.AllMessages(ctx, conv)
	if err != nil {
		t.Fatalf("AllMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty slice, got %d messages", len(msgs))
	}
}

func TestConversationsFor(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	ab, err := s.Start(ctx, StartInput{SenderID: "alice", ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cb, err := s.Start(ctx, StartInput{SenderID: "carol", ReceiverID: "bob"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	forBob, err := s.ConversationsFor(ctx, "bob")
	if err != nil {
		t.Fatalf("ConversationsFor: %v", err)
	}
	if len(forBob) != 2 {
		t.Fatalf("bob has %d conversations, want 2", len(forBob))
	}
	seen := map[string]bool{}
	for _, c := range forBob {
		seen[c.ID] = true
	}
	if !seen[ab] || !seen[cb] {
		t.Fatalf("missing conversations: %v", seen)
	}

	forAlice, err := s.ConversationsFor(ctx, "alice")
	if err != nil {
		t.Fatalf("ConversationsFor: %v", err)
	}
	if len(forAlice) != 1 || forAlice[0].ID != ab {
		t.Fatalf("alice conversations = %v", forAlice)
	}

	forGhost, err := s.ConversationsFor(ctx, "ghost")
	if err != nil {
		t.Fatalf("ConversationsFor: %v", err)
	}
	if len(forGhost) != 0 {
		t.Fatalf("ghost should have no conversations")
	}
}
