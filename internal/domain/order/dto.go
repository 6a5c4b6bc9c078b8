// internal/domain/order/dto.go
package order

import "time"

type CreateOrderRequest struct {
	CustomerID int64   `json:"customer_id" binding:"required"`
	ProductIDs []int64 `json:"product_ids" binding:"required"`
}

type ListFilters struct {
	Status Status    `form:"status"`
	Since  time.Time `form:"since" time_format:"2006-01-02"`
}
