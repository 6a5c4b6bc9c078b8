package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/product"
	"crm-service/internal/pkg/response"
	"crm-service/internal/repository"
	"crm-service/internal/repository/memory"
	service "crm-service/internal/service/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*gin.Engine, repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	h := NewOrderHandler(service.NewOrderService(store, zap.NewNop()))

	r := gin.New()
	orders := r.Group("/api/v1/orders")
	orders.GET("", h.ListOrders)
	orders.POST("", h.CreateOrder)

	return r, store
}

func seed(t *testing.T, store repository.Store) (customer.Customer, product.Product) {
	t.Helper()
	ctx := context.Background()

	c := customer.Customer{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, store.Customers().Create(ctx, &c))

	p := product.Product{Name: "Laptop", Price: 999.99, Stock: 4}
	require.NoError(t, store.Products().Create(ctx, &p))

	return c, p
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCreateOrderEndpoint(t *testing.T) {
	r, store := newRouter(t)
	c, p := seed(t, store)

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": c.ID,
		"product_ids": []int64{p.ID},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(c.ID), data["customer_id"])
	assert.Equal(t, 999.99, data["total_amount"])
	assert.Equal(t, "PENDING", data["status"])
}

func TestCreateOrderEndpointUnknownCustomer(t *testing.T) {
	r, store := newRouter(t)
	_, p := seed(t, store)

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": 9999,
		"product_ids": []int64{p.ID},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestCreateOrderEndpointUnknownProduct(t *testing.T) {
	r, store := newRouter(t)
	c, _ := seed(t, store)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": c.ID,
		"product_ids": []int64{404},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderEndpointMissingProducts(t *testing.T) {
	r, store := newRouter(t)
	c, _ := seed(t, store)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": c.ID,
		"product_ids": []int64{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersEndpointFilters(t *testing.T) {
	r, store := newRouter(t)
	c, p := seed(t, store)

	doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": c.ID,
		"product_ids": []int64{p.ID},
	})

	rec, env := doJSON(t, r, http.MethodGet, "/api/v1/orders?status=PENDING", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	assert.Len(t, env.Data, 1)

	rec, env = doJSON(t, r, http.MethodGet, "/api/v1/orders?status=SHIPPED", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Data)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/orders?status=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/orders?since=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
