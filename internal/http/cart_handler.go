package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// CartStore is the session cart as the handlers consume it.
type CartStore interface {
	Items(ctx context.Context, sessionID string) []domain.CartItem
	Add(ctx context.Context, sessionID string, item domain.CartItem) ([]domain.CartItem, error)
	Remove(ctx context.Context, sessionID string, id int64) ([]domain.CartItem, error)
	Clear(ctx context.Context, sessionID string) error
}

// PluginFinder resolves catalog entries for cart snapshots.
type PluginFinder interface {
	Find(ctx context.Context, id int64) (*domain.Plugin, bool, error)
}

type CartHandler struct {
	cart    CartStore
	catalog PluginFinder
}

func NewCartHandler(cart CartStore, catalog PluginFinder) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog}
}

type addItemRequestDTO struct {
	PluginID int64 `json:"pluginId"`
}

type cartResponseDTO struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func cartResponse(items []domain.CartItem) cartResponseDTO {
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponseDTO{Items: items, Total: domain.CartTotal(items)}
}

// GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items(r.Context(), sid)))
}

// POST /api/v1/cart/items
// The item stored is a snapshot of the catalog entry at this moment; the
// price is resolved server-side, never taken from the request.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PluginID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_plugin_id", "pluginId must be positive")
		return
	}

	plugin, found, err := h.catalog.Find(r.Context(), req.PluginID)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "not_found", "plugin not found")
		return
	}

	sid := sessionIDFromContext(r.Context())
	items, err := h.cart.Add(r.Context(), sid, domain.NewCartItem(*plugin))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update the cart")
		return
	}
	respondJSON(w, http.StatusCreated, cartResponse(items))
}

// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_plugin_id", "id must be a positive integer")
		return
	}

	sid := sessionIDFromContext(r.Context())
	items, err := h.cart.Remove(r.Context(), sid, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update the cart")
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(items))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	if err := h.cart.Clear(r.Context(), sid); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update the cart")
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(nil))
}
