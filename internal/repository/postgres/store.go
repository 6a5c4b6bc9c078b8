// internal/repository/postgres/store.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"
	"crm-service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repositories serve both pooled and transactional access.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	conn      querier
	customers *CustomerRepository
	products  *ProductRepository
	orders    *OrderRepository
}

func NewStore(pool *pgxpool.Pool) *Store {
	return newStore(pool)
}

func newStore(conn querier) *Store {
	return &Store{
		conn:      conn,
		customers: NewCustomerRepository(conn),
		products:  NewProductRepository(conn),
		orders:    NewOrderRepository(conn),
	}
}

func (s *Store) Customers() customer.Repository { return s.customers }
func (s *Store) Products() product.Repository   { return s.products }
func (s *Store) Orders() order.Repository       { return s.orders }

// RunAtomic runs fn against a store bound to one transaction. The deferred
// rollback is a no-op once the transaction has committed.
func (s *Store) RunAtomic(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
