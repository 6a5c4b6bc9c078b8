// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"

	"crm-service/internal/domain/customer"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "Customer created successfully.", result)
}

// BulkCreateCustomers creates a batch of customers with per-record errors
func (h *CustomerHandler) BulkCreateCustomers(c *gin.Context) {
	var req customer.BulkCreateCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	created, errs, err := h.customerService.BulkCreateCustomers(c.Request.Context(), req.Customers)
	if err != nil {
		response.FromError(c, "failed to create customers", err)
		return
	}

	response.Success(c, http.StatusCreated, "bulk create finished", customer.BulkCreateResult{
		Customers: created,
		Errors:    errs,
	})
}

// ListCustomers retrieves all customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", customers)
}
