// internal/handlers/order/order_handler.go
package order

import (
	"net/http"
	"time"

	"crm-service/internal/domain/order"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder creates an order with its product associations
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create order", err)
		return
	}

	response.Success(c, http.StatusCreated, "order created successfully", result)
}

// ListOrders retrieves orders filtered by ?status= and ?since=YYYY-MM-DD
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := &order.ListFilters{
		Status: order.Status(c.Query("status")),
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			response.ValidationError(c, "invalid since date, want YYYY-MM-DD", err)
			return
		}
		filters.Since = t
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filters)
	if err != nil {
		response.FromError(c, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", orders)
}
