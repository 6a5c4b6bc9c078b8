package order

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store *memory.Store
	svc   *OrderService
}

func newFixture(t *testing.T) (*fixture, *customer.Customer, []product.Product) {
	t.Helper()

	store := memory.NewStore()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	c := &customer.Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.Customers().Create(ctx, c))

	products := []product.Product{
		{Name: "Widget", Price: 10.00, Stock: 5},
		{Name: "Gadget", Price: 15.00, Stock: 5},
	}
	for i := range products {
		require.NoError(t, store.Products().Create(ctx, &products[i]))
	}

	return &fixture{store: store, svc: svc}, c, products
}

func TestCreateOrderComputesTotal(t *testing.T) {
	f, c, products := newFixture(t)

	o, err := f.svc.CreateOrder(context.Background(), &order.CreateOrderRequest{
		CustomerID: c.ID,
		ProductIDs: []int64{products[0].ID, products[1].ID},
	})
	require.NoError(t, err)

	assert.NotZero(t, o.ID)
	assert.Equal(t, c.ID, o.CustomerID)
	assert.Equal(t, 25.00, o.TotalAmount)
	assert.Len(t, o.ProductIDs, 2)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f, _, products := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &order.CreateOrderRequest{
		CustomerID: 999,
		ProductIDs: []int64{products[0].ID},
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCreateOrderUnknownProductLeavesStoreUnchanged(t *testing.T) {
	f, c, products := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: c.ID,
		ProductIDs: []int64{products[0].ID, 999},
	})
	require.ErrorIs(t, err, xerrors.ErrNotFound)

	orders, err := f.store.Orders().List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderEmptyProductList(t *testing.T) {
	f, c, _ := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &order.CreateOrderRequest{
		CustomerID: c.ID,
		ProductIDs: []int64{},
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCreateOrderDuplicateProductIDsCountOnce(t *testing.T) {
	f, c, products := newFixture(t)

	o, err := f.svc.CreateOrder(context.Background(), &order.CreateOrderRequest{
		CustomerID: c.ID,
		ProductIDs: []int64{products[0].ID, products[0].ID},
	})
	require.NoError(t, err)

	assert.Equal(t, 10.00, o.TotalAmount)
	assert.Len(t, o.ProductIDs, 1)
}

func TestListOrdersFilters(t *testing.T) {
	f, c, products := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, &order.CreateOrderRequest{
		CustomerID: c.ID,
		ProductIDs: []int64{products[0].ID},
	})
	require.NoError(t, err)

	pending, err := f.svc.ListOrders(ctx, &order.ListFilters{Status: order.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice@example.com", pending[0].CustomerEmail)

	shipped, err := f.svc.ListOrders(ctx, &order.ListFilters{Status: order.StatusShipped})
	require.NoError(t, err)
	assert.Empty(t, shipped)

	future, err := f.svc.ListOrders(ctx, &order.ListFilters{
		Since: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, future)

	_, err = f.svc.ListOrders(ctx, &order.ListFilters{Status: order.Status("BOGUS")})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
