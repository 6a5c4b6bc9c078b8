// internal/app/router.go
package app

import (
	customerHandler "crm-service/internal/handlers/customer"
	orderHandler "crm-service/internal/handlers/order"
	productHandler "crm-service/internal/handlers/product"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler *customerHandler.CustomerHandler
	ProductHandler  *productHandler.ProductHandler
	OrderHandler    *orderHandler.OrderHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.POST("/bulk", h.CustomerHandler.BulkCreateCustomers)
	}

	// ==================== Products ====================
	products := api.Group("/products")
	{
		products.GET("", h.ProductHandler.ListProducts)
		products.POST("", h.ProductHandler.CreateProduct)
		products.POST("/restock", h.ProductHandler.RestockLowInventory)
	}

	// ==================== Orders ====================
	orders := api.Group("/orders")
	{
		orders.GET("", h.OrderHandler.ListOrders)
		orders.POST("", h.OrderHandler.CreateOrder)
	}
}
