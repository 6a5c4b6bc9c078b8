// internal/repository/postgres/order_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-service/internal/domain/order"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db querier
}

func NewOrderRepository(db querier) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order row and its product associations. Run it inside
// RunAtomic so the order and its associations become visible together.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (customer_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, order_date
	`

	err := r.db.QueryRow(ctx, query, o.CustomerID, o.TotalAmount, o.Status).
		Scan(&o.ID, &o.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, productID := range o.ProductIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`,
			o.ID, productID,
		)
		if err != nil {
			return fmt.Errorf("failed to associate product %d: %w", productID, err)
		}
	}

	return nil
}

// FindByID retrieves an order with its product associations
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.status, o.order_date,
		       COALESCE(array_agg(op.product_id ORDER BY op.product_id)
		                FILTER (WHERE op.product_id IS NOT NULL), '{}')
		FROM orders o
		LEFT JOIN order_products op ON op.order_id = o.id
		WHERE o.id = $1
		GROUP BY o.id
	`

	var o order.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.TotalAmount, &o.Status, &o.OrderDate, &o.ProductIDs,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return &o, nil
}

// List retrieves orders with the owning customer's email, optionally
// filtered by status and a minimum order date.
func (r *OrderRepository) List(ctx context.Context, filters *order.ListFilters) ([]order.OrderInfo, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	argPos := 1

	if filters != nil && filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}
	if filters != nil && !filters.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("o.order_date >= $%d", argPos))
		args = append(args, filters.Since)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.customer_id, c.email, o.total_amount, o.status, o.order_date,
		       COALESCE(array_agg(op.product_id ORDER BY op.product_id)
		                FILTER (WHERE op.product_id IS NOT NULL), '{}')
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_products op ON op.order_id = o.id
		WHERE %s
		GROUP BY o.id, c.email
		ORDER BY o.id
	`, strings.Join(conditions, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []order.OrderInfo{}
	for rows.Next() {
		var o order.OrderInfo
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerEmail,
			&o.TotalAmount, &o.Status, &o.OrderDate, &o.ProductIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
