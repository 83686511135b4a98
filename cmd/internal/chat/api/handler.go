// Package chatapi exposes conversation and message operations over HTTP.
// Every route requires a bearer session token; the sender identity is
// always taken from the verified claims, never from the request body.
package chatapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authapi "parley/cmd/internal/auth/api"
	"parley/cmd/internal/chat"
	"parley/cmd/security/token"
)

const maxBodyBytes = 64 << 10

// Handler serves the conversation endpoints.
type Handler struct {
	log    *slog.Logger
	store  chat.Store
	tokens *token.Manager
	now    func() time.Time
}

// NewHandler builds a Handler around the given store and token manager.
func NewHandler(log *slog.Logger, store chat.Store, tokens *token.Manager) *Handler {
	return &Handler{log: log, store: store, tokens: tokens, now: time.Now}
}

// Register mounts the conversation routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /conversations", authapi.RequireSession(h.tokens, h.handleStart))
	mux.HandleFunc("GET /conversations", authapi.RequireSession(h.tokens, h.handleList))
	mux.HandleFunc("POST /conversations/{id}/messages", authapi.RequireSession(h.tokens, h.handleSend))
	mux.HandleFunc("GET /conversations/{id}/messages", authapi.RequireSession(h.tokens, h.handleMessages))
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.ClaimsFromContext(r.Context())
	if !ok {
		authapi.WriteError(w, http.StatusUnauthorized, "token_invalid", "missing session")
		return
	}

	var req startConversationRequest
	if err := authapi.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		authapi.WriteError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.ReceiverID) == "" {
		authapi.WriteError(w, http.StatusBadRequest, "missing_receiver", "receiver_id is required")
		return
	}

	id, err := h.store.Start(r.Context(), chat.StartInput{
		SenderID:   claims.AccountID,
		ReceiverID: req.ReceiverID,
		Now:        h.now().UTC(),
	})
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	h.log.Info("conversation.started", "conversation_id", id, "sender_id", claims.AccountID)
	authapi.WriteJSON(w, http.StatusCreated, conversationIDResponse{ConversationID: id})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.ClaimsFromContext(r.Context())
	if !ok {
		authapi.WriteError(w, http.StatusUnauthorized, "token_invalid", "missing session")
		return
	}

	convos, err := h.store.ConversationsFor(r.Context(), claims.AccountID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	resp := conversationsResponse{Conversations: make([]conversationResponse, 0, len(convos))}
	for _, c := range convos {
		resp.Conversations = append(resp.Conversations, conversationResponse{
			ID:         c.ID,
			SenderID:   c.SenderID,
			ReceiverID: c.ReceiverID,
			StartedAt:  c.StartedAt,
		})
	}
	authapi.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	claims, ok := authapi.ClaimsFromContext(r.Context())
	if !ok {
		authapi.WriteError(w, http.StatusUnauthorized, "token_invalid", "missing session")
		return
	}
	conversationID := r.PathValue("id")

	var req sendMessageRequest
	if err := authapi.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		authapi.WriteError(w, http.StatusBadRequest, "invalid_body", "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		authapi.WriteError(w, http.StatusBadRequest, "empty_content", "content is required")
		return
	}

	id, err := h.store.SendMessage(r.Context(), chat.SendMessageInput{
		SenderID:       claims.AccountID,
		ConversationID: conversationID,
		Content:        req.Content,
		Now:            h.now().UTC(),
	})
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	authapi.WriteJSON(w, http.StatusCreated, messageIDResponse{MessageID: id})
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := authapi.ClaimsFromContext(r.Context()); !ok {
		authapi.WriteError(w, http.StatusUnauthorized, "token_invalid", "missing session")
		return
	}
	conversationID := r.PathValue("id")

	var (
		msgs []chat.Message
		err  error
	)
	if raw := r.URL.Query().Get("after"); raw != "" {
		after, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			authapi.WriteError(w, http.StatusBadRequest, "invalid_after", "after must be an RFC 3339 timestamp")
			return
		}
		msgs, err = h.store.MessagesAfter(r.Context(), conversationID, after)
	} else {
		msgs, err = h.store.AllMessages(r.Context(), conversationID)
	}
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	resp := messagesResponse{Messages: make([]messageResponse, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, messageResponse{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			Content:        m.Content,
			SentAt:         m.SentAt,
		})
	}
	authapi.WriteJSON(w, http.StatusOK, resp)
}

// conversationConflict mirrors the standard error envelope and adds the
// existing conversation id so clients can adopt it instead of retrying.
type conversationConflict struct {
	Error          conflictDetail `json:"error"`
	ConversationID string         `json:"conversation_id"`
}

type conflictDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	var exists chat.AlreadyExistsError
	var notFound chat.NotFoundError
	switch {
	case errors.As(err, &exists):
		authapi.WriteJSON(w, http.StatusConflict, conversationConflict{
			Error:          conflictDetail{Code: "conversation_exists", Message: "a conversation already exists for this pair"},
			ConversationID: exists.ConversationID,
		})
	case errors.Is(err, chat.ErrSameSenderAndReceiver):
		authapi.WriteError(w, http.StatusBadRequest, "same_account", "cannot start a conversation with yourself")
	case errors.As(err, &notFound):
		authapi.WriteError(w, http.StatusNotFound, "not_found", notFound.Resource+" not found")
	case chat.IsNotFound(err):
		authapi.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
	default:
		h.log.Error("chat.internal_error", "err", err)
		authapi.WriteError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
