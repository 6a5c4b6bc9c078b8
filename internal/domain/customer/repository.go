// internal/domain/customer/repository.go
package customer

import "context"

type Repository interface {
	// Create persists a new customer and fills ID and CreatedAt.
	// Returns xerrors.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]Customer, error)
}
