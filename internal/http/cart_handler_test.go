package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

type mockCartStore struct {
	items map[string][]domain.CartItem
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{items: make(map[string][]domain.CartItem)}
}

func (m *mockCartStore) Items(_ context.Context, sessionID string) []domain.CartItem {
	return m.items[sessionID]
}

func (m *mockCartStore) Add(_ context.Context, sessionID string, item domain.CartItem) ([]domain.CartItem, error) {
	for _, existing := range m.items[sessionID] {
		if existing.ID == item.ID {
			return m.items[sessionID], nil
		}
	}
	m.items[sessionID] = append(m.items[sessionID], item)
	return m.items[sessionID], nil
}

func (m *mockCartStore) Remove(_ context.Context, sessionID string, id int64) ([]domain.CartItem, error) {
	kept := make([]domain.CartItem, 0)
	for _, item := range m.items[sessionID] {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items[sessionID] = kept
	return kept, nil
}

func (m *mockCartStore) Clear(_ context.Context, sessionID string) error {
	m.items[sessionID] = nil
	return nil
}

type mockFinder struct {
	plugins map[int64]domain.Plugin
	err     error
}

func (m *mockFinder) Find(_ context.Context, id int64) (*domain.Plugin, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	p, ok := m.plugins[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func testFinder() *mockFinder {
	return &mockFinder{plugins: map[int64]domain.Plugin{
		1: {ID: 1, Name: "Essentials", Identifier: "essentials", Price: decimal.RequireFromString("19.90")},
	}}
}

func TestAddItem_SnapshotsCatalogEntry(t *testing.T) {
	store := newMockCartStore()
	h := NewCartHandler(store, testFinder())

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"pluginId":1}`)), "s1")
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp cartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "essentials", resp.Items[0].Identifier)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("19.90")))
}

func TestAddItem_PriceComesFromCatalogNotRequest(t *testing.T) {
	store := newMockCartStore()
	h := NewCartHandler(store, testFinder())

	// A price in the request body is ignored entirely.
	req := withSessionID(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"pluginId":1,"price":"0.01"}`)), "s1")
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	var resp cartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Price.Equal(decimal.RequireFromString("19.90")))
}

func TestAddItem_UnknownPlugin(t *testing.T) {
	h := NewCartHandler(newMockCartStore(), testFinder())

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"pluginId":42}`)), "s1")
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItem_InvalidID(t *testing.T) {
	h := NewCartHandler(newMockCartStore(), testFinder())

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"pluginId":0}`)), "s1")
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCart_EmptyCartIsAnEmptyList(t *testing.T) {
	h := NewCartHandler(newMockCartStore(), testFinder())

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "s1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`, "never null, always an empty array")
}

func TestClearCart(t *testing.T) {
	store := newMockCartStore()
	store.items["s1"] = []domain.CartItem{{ID: 1, Identifier: "essentials"}}
	h := NewCartHandler(store, testFinder())

	req := withSessionID(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "s1")
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.items["s1"])
}
