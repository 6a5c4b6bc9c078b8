// internal/repository/store.go
package repository

import (
	"context"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"
)

// Store is the entity store consumed by the services. All writes go through
// it; nothing outside the services writes to entities directly.
type Store interface {
	Customers() customer.Repository
	Products() product.Repository
	Orders() order.Repository

	// RunAtomic executes fn against a store bound to a single transaction.
	// Every write made inside fn commits together, or rolls back entirely
	// when fn returns an error.
	RunAtomic(ctx context.Context, fn func(Store) error) error
}
