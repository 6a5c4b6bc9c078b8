// internal/service/product/product.go
package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/domain/product"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository"

	"go.uber.org/zap"
)

// Replenishment policy: every product below the threshold gains the restock
// quantity.
const (
	LowStockThreshold = 10
	RestockQuantity   = 10
)

const (
	restockLockKey = "crm:restock"
	restockLockTTL = time.Minute
)

// restockTimeFormat matches the historical log line format.
const restockTimeFormat = "02/01/2006-15:04:05"

// ErrRestockRunning is returned when another restock run holds the lock.
var ErrRestockRunning = errors.New("restock already in progress")

// Locker guards restock runs against concurrent execution. The redis-backed
// implementation lives in internal/pkg/lock.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// NopLocker always grants the lock. Used when no redis is configured.
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

type ProductService struct {
	store  repository.Store
	locker Locker
	logger *zap.Logger
}

func NewProductService(store repository.Store, locker Locker, logger *zap.Logger) *ProductService {
	if locker == nil {
		locker = NopLocker{}
	}
	return &ProductService{
		store:  store,
		locker: locker,
		logger: logger,
	}
}

// CreateProduct validates the request and persists exactly one product.
// Stock defaults to zero when omitted.
func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", xerrors.ErrInvalidValue)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", xerrors.ErrInvalidValue)
	}

	p := &product.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.Float64("price", p.Price),
		zap.Int("stock", p.Stock),
	)

	return p, nil
}

// RestockLowInventory bumps every product below the low-stock threshold by
// the restock quantity and reports the updated set. The store applies the
// whole selection as one conditional update, and the lock keeps overlapping
// runs from executing at all.
func (s *ProductService) RestockLowInventory(ctx context.Context) (*product.RestockResult, error) {
	release, ok, err := s.locker.Acquire(ctx, restockLockKey, restockLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire restock lock: %w", err)
	}
	if !ok {
		return nil, ErrRestockRunning
	}
	defer release()

	updated, err := s.store.Products().RestockBelow(ctx, LowStockThreshold, RestockQuantity)
	if err != nil {
		s.logger.Error("failed to restock products", zap.Error(err))
		return nil, err
	}

	message := fmt.Sprintf("%d products updated at %s",
		len(updated), time.Now().Format(restockTimeFormat))

	s.logger.Info("low inventory restocked", zap.Int("updated", len(updated)))

	return &product.RestockResult{
		UpdatedProducts: updated,
		Message:         message,
	}, nil
}

// ListProducts retrieves all products
func (s *ProductService) ListProducts(ctx context.Context) ([]product.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
