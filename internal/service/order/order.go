// internal/service/order/order.go
package order

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository"

	"go.uber.org/zap"
)

type OrderService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewOrderService(store repository.Store, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:  store,
		logger: logger,
	}
}

// CreateOrder resolves the customer and product references, computes the
// total from current product prices and persists the order with its
// associations as one atomic unit. Any failure inside the scope rolls the
// whole order back, so a reader never observes a partial order.
func (s *OrderService) CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (*order.Order, error) {
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required: %w", xerrors.ErrInvalidInput)
	}
	if len(req.ProductIDs) == 0 {
		return nil, fmt.Errorf("product_ids must not be empty: %w", xerrors.ErrInvalidInput)
	}

	var created *order.Order
	err := s.store.RunAtomic(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().FindByID(ctx, req.CustomerID); err != nil {
			if errors.Is(err, xerrors.ErrNotFound) {
				return fmt.Errorf("customer %d: %w", req.CustomerID, xerrors.ErrNotFound)
			}
			return fmt.Errorf("failed to resolve customer: %w", err)
		}

		products, err := tx.Products().FindByIDs(ctx, req.ProductIDs)
		if err != nil {
			return fmt.Errorf("failed to resolve products: %w", err)
		}
		if missing := missingIDs(req.ProductIDs, products); len(missing) > 0 {
			return fmt.Errorf("products %v: %w", missing, xerrors.ErrNotFound)
		}

		total := 0.0
		productIDs := make([]int64, 0, len(products))
		for _, p := range products {
			total += p.Price
			productIDs = append(productIDs, p.ID)
		}

		o := &order.Order{
			CustomerID:  req.CustomerID,
			ProductIDs:  productIDs,
			TotalAmount: total,
			Status:      order.StatusPending,
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		if !xerrors.IsDomain(err) {
			s.logger.Error("failed to create order", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("customer_id", created.CustomerID),
		zap.Float64("total_amount", created.TotalAmount),
		zap.Int("products", len(created.ProductIDs)),
	)

	return created, nil
}

// ListOrders retrieves orders, optionally filtered by status and a minimum
// order date.
func (s *OrderService) ListOrders(ctx context.Context, filters *order.ListFilters) ([]order.OrderInfo, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", filters.Status, xerrors.ErrInvalidInput)
	}

	orders, err := s.store.Orders().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// missingIDs reports the requested ids that did not resolve. Duplicate
// requested ids count once.
func missingIDs(requested []int64, resolved []product.Product) []int64 {
	found := make(map[int64]bool, len(resolved))
	for _, p := range resolved {
		found[p.ID] = true
	}

	missing := []int64{}
	seen := map[int64]bool{}
	for _, id := range requested {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}
