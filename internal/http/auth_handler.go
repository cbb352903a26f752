package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/session"
)

// SessionManager is the full session lifecycle as the handlers consume it.
type SessionManager interface {
	Login(ctx context.Context, sessionID, username, password string) (*session.Record, error)
	Register(ctx context.Context, sessionID, username, password, email string) (*session.Record, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (*session.Record, error)
}

type AuthHandler struct {
	sessions SessionManager
}

func NewAuthHandler(sessions SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "username and password are required")
		return
	}

	sid := sessionIDFromContext(r.Context())
	rec, err := h.sessions.Login(r.Context(), sid, req.Username, req.Password)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.User)
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "username and password are required")
		return
	}

	sid := sessionIDFromContext(r.Context())
	rec, err := h.sessions.Register(r.Context(), sid, req.Username, req.Password, req.Email)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec.User)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	if err := h.sessions.Logout(r.Context(), sid); err != nil {
		log.Printf("logout error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not end the session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/client/me (behind RequireAuth)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	if rec == nil {
		respondRedirect(w, http.StatusUnauthorized, "unauthenticated", "sign in to continue", loginPath)
		return
	}
	respondJSON(w, http.StatusOK, rec.User)
}
