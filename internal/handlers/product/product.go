// internal/handlers/product/product_handler.go
package product

import (
	"errors"
	"net/http"

	"crm-service/internal/domain/product"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create product", err)
		return
	}

	response.Success(c, http.StatusCreated, "product created successfully", result)
}

// RestockLowInventory bumps every product below the low-stock threshold
func (h *ProductHandler) RestockLowInventory(c *gin.Context) {
	result, err := h.productService.RestockLowInventory(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrRestockRunning) {
			response.Conflict(c, "restock already in progress", err)
			return
		}
		response.FromError(c, "failed to restock products", err)
		return
	}

	response.Success(c, http.StatusOK, result.Message, result)
}

// ListProducts retrieves all products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", products)
}
