package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evenlines/storefront/internal/cart"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) *cart.Service {
	t.Helper()
	store := cart.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return cart.NewService(store)
}

// withSession injects an authenticated session id the way AuthMiddleware does
func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeCart(t *testing.T, recorder *httptest.ResponseRecorder) *cart.Cart {
	t.Helper()
	var c cart.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&c))
	return &c
}

func TestGetCart_Unauthorized(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/cart", nil)

	handler.GetCart(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetCart_EmptyForFreshSession(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/v1/cart", nil), "session1")

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	c := decodeCart(t, recorder)
	assert.Equal(t, "session1", c.SessionID)
	assert.Empty(t, c.Items)
}

func TestAddItem_Success(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)

	body, _ := json.Marshal(AddItemRequestDTO{ID: "vinyl-album", Name: "Vinyl Album", Price: 35.00, Quantity: 2})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), "session1")

	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	c := decodeCart(t, recorder)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddItem_InvalidBody(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader([]byte("{broken"))), "session1")

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_RejectsBadFields(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)

	cases := []AddItemRequestDTO{
		{ID: "", Price: 10, Quantity: 1},         // empty id
		{ID: "tshirt", Price: 0, Quantity: 1},    // non-positive price
		{ID: "tshirt", Price: -5, Quantity: 1},   // negative price
		{ID: "tshirt", Price: 10, Quantity: 100}, // over the cap
	}

	for _, dto := range cases {
		body, _ := json.Marshal(dto)
		recorder := httptest.NewRecorder()
		request := withSession(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), "session1")

		handler.AddItem(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "dto %+v should be rejected", dto)
	}
}

func TestUpdateQuantity_Success(t *testing.T) {
	carts := newTestCartService(t)
	_, err := carts.AddItem(context.Background(), "session1", cart.Item{ID: "tshirt", Price: 25.00, Quantity: 1})
	require.NoError(t, err)

	handler := NewCartHandler(carts, 5*time.Second)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 4})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/api/v1/cart/items/tshirt", bytes.NewReader(body))
	request = withSession(withURLParam(request, "item_id", "tshirt"), "session1")

	handler.UpdateQuantity(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	c := decodeCart(t, recorder)
	assert.Equal(t, 4, c.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	carts := newTestCartService(t)
	_, err := carts.AddItem(context.Background(), "session1", cart.Item{ID: "tshirt", Price: 25.00, Quantity: 3})
	require.NoError(t, err)

	handler := NewCartHandler(carts, 5*time.Second)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 0})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/api/v1/cart/items/tshirt", bytes.NewReader(body))
	request = withSession(withURLParam(request, "item_id", "tshirt"), "session1")

	handler.UpdateQuantity(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeCart(t, recorder).Items)
}

func TestRemoveItem_Success(t *testing.T) {
	carts := newTestCartService(t)
	_, err := carts.AddItem(context.Background(), "session1", cart.Item{ID: "poster", Price: 15.00, Quantity: 1})
	require.NoError(t, err)

	handler := NewCartHandler(carts, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/api/v1/cart/items/poster", nil)
	request = withSession(withURLParam(request, "item_id", "poster"), "session1")

	handler.RemoveItem(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeCart(t, recorder).Items)
}

func TestClearCart_Success(t *testing.T) {
	carts := newTestCartService(t)
	_, err := carts.AddItem(context.Background(), "session1", cart.Item{ID: "poster", Price: 15.00, Quantity: 2})
	require.NoError(t, err)

	handler := NewCartHandler(carts, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/api/v1/cart", nil), "session1")

	handler.ClearCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeCart(t, recorder).Items)
}

func TestTogglePanel(t *testing.T) {
	handler := NewCartHandler(newTestCartService(t), 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/cart/panel/toggle", nil), "session1")
	handler.TogglePanel(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decodeCart(t, recorder).IsOpen)

	recorder = httptest.NewRecorder()
	request = withSession(httptest.NewRequest("POST", "/api/v1/cart/panel/toggle", nil), "session1")
	handler.TogglePanel(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, decodeCart(t, recorder).IsOpen)
}
