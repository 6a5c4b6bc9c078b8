// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain/product"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db querier
}

func NewProductRepository(db querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, p.Name, p.Price, p.Stock).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = $1
	`

	var p product.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &p, nil
}

// FindByIDs resolves the given product ids; missing ids are absent from the
// result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// List retrieves all products in creation order
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// RestockBelow bumps every product below threshold by qty in one conditional
// update, so the selection and the increment cannot race a concurrent run.
func (r *ProductRepository) RestockBelow(ctx context.Context, threshold, qty int) ([]product.Product, error) {
	query := `
		WITH restocked AS (
			UPDATE products
			SET stock = stock + $2
			WHERE stock < $1
			RETURNING id, name, price, stock, created_at
		)
		SELECT id, name, price, stock, created_at FROM restocked ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, threshold, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to restock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]product.Product, error) {
	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
