package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/domain"
	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

// AccountAPI is the authenticated client surface of the store API.
type AccountAPI interface {
	License(ctx context.Context, token string) (*domain.License, error)
	ResetLicense(ctx context.Context, token string) error
	UpdateLicenseIP(ctx context.Context, token, ip string) error
	Sales(ctx context.Context, token string) ([]domain.Sale, error)
	TopBuyers(ctx context.Context, token string) ([]domain.TopBuyer, error)
	Activities(ctx context.Context, token string) ([]domain.ActivityLog, error)
}

type AccountHandler struct {
	api      AccountAPI
	sessions SessionManager
}

func NewAccountHandler(api AccountAPI, sessions SessionManager) *AccountHandler {
	return &AccountHandler{api: api, sessions: sessions}
}

// fail handles an upstream error on an authenticated call. A 401/403 means
// the cached token is dead: the session is dropped and the client sent back
// through login, mirroring the forced-logout behavior of the views.
func (h *AccountHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if upstream.IsAuthError(err) {
		sid := sessionIDFromContext(r.Context())
		if errOut := h.sessions.Logout(r.Context(), sid); errOut != nil {
			log.Printf("forced logout error: %v", errOut)
		}
		respondRedirect(w, http.StatusUnauthorized, "session_expired", "session expired, sign in again", loginPath)
		return
	}
	respondUpstreamError(w, err)
}

// GET /api/v1/client/license
func (h *AccountHandler) License(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	license, err := h.api.License(r.Context(), rec.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, license)
}

// POST /api/v1/client/license/reset
func (h *AccountHandler) ResetLicense(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	if err := h.api.ResetLicense(r.Context(), rec.Token); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateIPRequestDTO struct {
	IP string `json:"ip"`
}

// POST /api/v1/client/license/ip
func (h *AccountHandler) UpdateLicenseIP(w http.ResponseWriter, r *http.Request) {
	var req updateIPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.IP == "" {
		respondError(w, http.StatusBadRequest, "missing_ip", "ip is required")
		return
	}

	rec := recordFromContext(r.Context())
	if err := h.api.UpdateLicenseIP(r.Context(), rec.Token, req.IP); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/client/sales
func (h *AccountHandler) Sales(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	sales, err := h.api.Sales(r.Context(), rec.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

// GET /api/v1/client/top-buyers
func (h *AccountHandler) TopBuyers(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	buyers, err := h.api.TopBuyers(r.Context(), rec.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, buyers)
}

// GET /api/v1/client/activities
func (h *AccountHandler) Activities(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	activities, err := h.api.Activities(r.Context(), rec.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}
