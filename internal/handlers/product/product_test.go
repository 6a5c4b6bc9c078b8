package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-service/internal/pkg/response"
	"crm-service/internal/repository/memory"
	service "crm-service/internal/service/product"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewProductHandler(service.NewProductService(memory.NewStore(), nil, zap.NewNop()))
	products := r.Group("/api/v1/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.POST("/restock", h.RestockLowInventory)

	return r
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

func TestCreateProductEndpoint(t *testing.T) {
	r := newRouter()

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"name":  "Widget",
		"price": 9.99,
		"stock": 3,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, 9.99, data["price"])
	assert.Equal(t, float64(3), data["stock"])
}

func TestCreateProductEndpointRejectsZeroPrice(t *testing.T) {
	r := newRouter()

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"name":  "Freebie",
		"price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "price must be positive")
}

// heldLocker refuses every acquisition, as if another restock run holds
// the lock.
type heldLocker struct{}

func (heldLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	return nil, false, nil
}

func TestRestockEndpointConflictsWhileLocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewProductHandler(service.NewProductService(memory.NewStore(), heldLocker{}, zap.NewNop()))
	r.POST("/api/v1/products/restock", h.RestockLowInventory)

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/products/restock", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "restock already in progress", env.Message)
}

func TestRestockEndpoint(t *testing.T) {
	r := newRouter()

	doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{"name": "Low", "price": 1.00, "stock": 3})
	doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{"name": "High", "price": 1.00, "stock": 12})

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/products/restock", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Message, "1 products updated at "), env.Message)

	data := env.Data.(map[string]interface{})
	updated := data["updated_products"].([]interface{})
	require.Len(t, updated, 1)
	assert.Equal(t, float64(13), updated[0].(map[string]interface{})["stock"])
}
