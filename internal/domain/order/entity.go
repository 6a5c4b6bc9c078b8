// internal/domain/order/entity.go
package order

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the known order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         int64   `json:"id" db:"id"`
	CustomerID int64   `json:"customer_id" db:"customer_id"`
	ProductIDs []int64 `json:"product_ids"`

	// TotalAmount is the sum of the referenced products' prices at the
	// moment of creation. It is not recomputed on later price changes.
	TotalAmount float64 `json:"total_amount" db:"total_amount"`

	Status    Status    `json:"status" db:"status"`
	OrderDate time.Time `json:"order_date" db:"order_date"`
}

// OrderInfo is the listing shape: the order plus the owning customer's
// email, which the reminder job needs.
type OrderInfo struct {
	Order
	CustomerEmail string `json:"customer_email"`
}
