// internal/domain/order/repository.go
package order

import "context"

type Repository interface {
	// Create persists the order and its product associations and fills ID
	// and OrderDate. Callers wanting all-or-nothing visibility run it
	// inside a transactional scope.
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filters *ListFilters) ([]OrderInfo, error)
}
