// Package authapi adapts HTTP requests to the identity service and
// renders its typed errors as status codes. Domain logic lives in
// cmd/identity; this layer only decodes, dispatches, and encodes.
package authapi

import (
	"log/slog"
	"net/http"

	"parley/cmd/identity"
	"parley/cmd/security/token"
)

const maxAuthBodyBytes = 16 << 10

// Handler wires HTTP auth endpoints to the identity service.
type Handler struct {
	log    *slog.Logger
	auth   *identity.Service
	tokens *token.Manager
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, auth *identity.Service, tokens *token.Manager) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, auth: auth, tokens: tokens}
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/signup", h.handleSignup)
	mux.HandleFunc("POST /auth/signin", h.handleSignin)
	mux.HandleFunc("DELETE /auth/account", RequireSession(h.tokens, h.handleDeleteAccount))
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := DecodeJSON(w, r, maxAuthBodyBytes, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Malformed JSON body.")
		return
	}

	tok, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAuthError(w, h.log, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tokenResponse{Token: tok})
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := DecodeJSON(w, r, maxAuthBodyBytes, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Malformed JSON body.")
		return
	}

	tok, err := h.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAuthError(w, h.log, err)
		return
	}

	WriteJSON(w, http.StatusOK, tokenResponse{Token: tok})
}

// handleDeleteAccount deletes the authenticated caller's own account.
// Administrative/test path.
func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "token_invalid", "Missing session.")
		return
	}

	deleted, err := h.auth.DeleteAccount(r.Context(), claims.AccountID)
	if err != nil {
		WriteAuthError(w, h.log, err)
		return
	}

	WriteJSON(w, http.StatusOK, deletedAccountResponse{
		ID:        deleted.ID,
		Email:     deleted.Email,
		CreatedAt: deleted.CreatedAt,
	})
}
