// internal/domain/product/repository.go
package product

import "context"

type Repository interface {
	// Create persists a new product and fills ID and CreatedAt.
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	// FindByIDs resolves the given product ids. Missing ids are simply
	// absent from the result; the caller decides whether that is an error.
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context) ([]Product, error)

	// RestockBelow atomically increments stock by qty for every product
	// whose stock is strictly below threshold, and returns the updated
	// rows. The predicate check and the increment are a single
	// conditional update so concurrent runs cannot double-apply.
	RestockBelow(ctx context.Context, threshold, qty int) ([]Product, error)
}
