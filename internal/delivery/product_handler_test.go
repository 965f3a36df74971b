package delivery

import (
	"net/http"
	"testing"

	"shop_service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)
	_, shopper := srv.loginAs(t, "alice", false)

	w := srv.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": 9.99}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Product](t, w)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 9.99, created.Price)

	w = srv.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.Product{created}, decode[[]domain.Product](t, w))

	w = srv.do(t, http.MethodPut, "/api/products/1", map[string]any{"price": 7.99}, shopper)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPut, "/api/products/1", map[string]any{"price": 7.99}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Product](t, w)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 7.99, updated.Price)

	w = srv.do(t, http.MethodGet, "/api/products/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, updated, decode[domain.Product](t, w))

	w = srv.do(t, http.MethodDelete, "/api/products/1", nil, admin)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodGet, "/api/products/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	srv := newTestServer(t, nil)
	_, shopper := srv.loginAs(t, "alice", false)
	before := srv.storage.Calls()

	bodies := []any{
		map[string]any{"name": "Widget", "price": 9.99},
		map[string]any{"price": -1},
		"{not json",
		nil,
	}
	for _, body := range bodies {
		w := srv.do(t, http.MethodPost, "/api/products", body, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "anonymous body %v", body)

		w = srv.do(t, http.MethodPost, "/api/products", body, shopper)
		assert.Equal(t, http.StatusForbidden, w.Code, "non-admin body %v", body)
	}
	assert.Equal(t, before, srv.storage.Calls())
}

func TestCreateProductValidation(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)
	before := srv.storage.Calls()

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", "{"},
		{"missing name", map[string]any{"price": 1.5}},
		{"missing price", map[string]any{"name": "Widget"}},
		{"negative price", map[string]any{"name": "Widget", "price": -3}},
		{"negative stock", map[string]any{"name": "Widget", "price": 3, "stock": -1}},
		{"price as string", map[string]any{"name": "Widget", "price": "cheap"}},
		{"price with fractional cents", map[string]any{"name": "Widget", "price": 12.345}},
		{"price beyond column precision", map[string]any{"name": "Widget", "price": 1e9}},
		{"stock beyond int4", map[string]any{"name": "Widget", "price": 3, "stock": 3000000000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/api/products", tt.body, admin)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
	assert.Equal(t, before, srv.storage.Calls())
}

func TestUpdateProductEdgeCases(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)

	w := srv.do(t, http.MethodPut, "/api/products/42", map[string]any{"price": 1.0}, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPut, "/api/products/abc", map[string]any{"price": 1.0}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	srv.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": 9.99}, admin)

	w = srv.do(t, http.MethodPut, "/api/products/1", map[string]any{}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/products/1", map[string]any{"price": 0}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)
	_, shopper := srv.loginAs(t, "alice", false)

	w := srv.do(t, http.MethodDelete, "/api/products/7", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": 9.99}, admin)

	w = srv.do(t, http.MethodDelete, "/api/products/1", nil, shopper)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/products/1", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/products/1", nil, admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListProductsEmpty(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateProductAtColumnLimits(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)

	body := map[string]any{"name": "Yacht", "price": 99999999.99, "stock": 2147483647}
	w := srv.do(t, http.MethodPost, "/api/products", body, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Product](t, w)
	assert.Equal(t, 99999999.99, created.Price)
	assert.Equal(t, 2147483647, created.Stock)

	w = srv.do(t, http.MethodGet, "/api/products/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[domain.Product](t, w))
}

func TestUpdateProductRejectsUnstorableValues(t *testing.T) {
	srv := newTestServer(t, nil)
	_, admin := srv.loginAs(t, "admin", true)
	srv.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": 9.99}, admin)
	before := srv.storage.Calls()

	for _, body := range []map[string]any{
		{"price": 7.999},
		{"price": 100000000},
		{"stock": 2147483648},
	} {
		w := srv.do(t, http.MethodPut, "/api/products/1", body, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
	assert.Equal(t, before, srv.storage.Calls())
}
