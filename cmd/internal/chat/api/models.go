package chatapi

import "time"

type startConversationRequest struct {
	ReceiverID string `json:"receiver_id"`
}

type conversationIDResponse struct {
	ConversationID string `json:"conversation_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type messageIDResponse struct {
	MessageID string `json:"message_id"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}

type messagesResponse struct {
	Messages []messageResponse `json:"messages"`
}

type conversationResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	StartedAt  time.Time `json:"started_at"`
}

type conversationsResponse struct {
	Conversations []conversationResponse `json:"conversations"`
}
