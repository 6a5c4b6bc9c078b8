// Package memory provides an in-memory implementation of the entity store
// with the same transactional and uniqueness semantics as the postgres one.
// It backs the service tests and can run the API without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository"
)

type state struct {
	customers map[int64]customer.Customer
	products  map[int64]product.Product
	orders    map[int64]order.Order

	nextCustomerID int64
	nextProductID  int64
	nextOrderID    int64
}

func newState() *state {
	return &state{
		customers:      map[int64]customer.Customer{},
		products:       map[int64]product.Product{},
		orders:         map[int64]order.Order{},
		nextCustomerID: 1,
		nextProductID:  1,
		nextOrderID:    1,
	}
}

func (st *state) clone() *state {
	cp := newState()
	cp.nextCustomerID = st.nextCustomerID
	cp.nextProductID = st.nextProductID
	cp.nextOrderID = st.nextOrderID
	for id, c := range st.customers {
		cp.customers[id] = c
	}
	for id, p := range st.products {
		cp.products[id] = p
	}
	for id, o := range st.orders {
		o.ProductIDs = append([]int64(nil), o.ProductIDs...)
		cp.orders[id] = o
	}
	return cp
}

type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) Customers() customer.Repository {
	return &customerRepo{st: s.st, mu: &s.mu}
}

func (s *Store) Products() product.Repository {
	return &productRepo{st: s.st, mu: &s.mu}
}

func (s *Store) Orders() order.Repository {
	return &orderRepo{st: s.st, mu: &s.mu}
}

// RunAtomic serializes the whole scope under the store mutex and restores a
// snapshot of the state when fn fails, so writes commit all-or-nothing.
func (s *Store) RunAtomic(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&txStore{st: s.st}); err != nil {
		*s.st = *snapshot
		return err
	}
	return nil
}

// txStore is the view handed to a RunAtomic callback. The caller already
// holds the store mutex, so its repositories run unlocked.
type txStore struct {
	st *state
}

func (t *txStore) Customers() customer.Repository { return &customerRepo{st: t.st} }
func (t *txStore) Products() product.Repository   { return &productRepo{st: t.st} }
func (t *txStore) Orders() order.Repository       { return &orderRepo{st: t.st} }

// RunAtomic on a transactional view behaves like a savepoint: a failing fn
// undoes only the writes of the nested scope.
func (t *txStore) RunAtomic(ctx context.Context, fn func(repository.Store) error) error {
	snapshot := t.st.clone()
	if err := fn(t); err != nil {
		*t.st = *snapshot
		return err
	}
	return nil
}

// lock acquires mu when present and returns the matching release. Repos
// created by a txStore carry a nil mu.
func lock(mu *sync.Mutex) func() {
	if mu == nil {
		return func() {}
	}
	mu.Lock()
	return mu.Unlock
}

// ---------- customers ----------

type customerRepo struct {
	st *state
	mu *sync.Mutex
}

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	defer lock(r.mu)()

	for _, existing := range r.st.customers {
		if existing.Email == c.Email {
			return fmt.Errorf("email %s: %w", c.Email, xerrors.ErrDuplicateEmail)
		}
	}

	c.ID = r.st.nextCustomerID
	r.st.nextCustomerID++
	c.CreatedAt = time.Now()
	r.st.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	defer lock(r.mu)()

	c, ok := r.st.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	defer lock(r.mu)()

	for _, c := range r.st.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *customerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	defer lock(r.mu)()

	for _, c := range r.st.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *customerRepo) List(ctx context.Context) ([]customer.Customer, error) {
	defer lock(r.mu)()

	customers := make([]customer.Customer, 0, len(r.st.customers))
	for _, c := range r.st.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// ---------- products ----------

type productRepo struct {
	st *state
	mu *sync.Mutex
}

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	defer lock(r.mu)()

	p.ID = r.st.nextProductID
	r.st.nextProductID++
	p.CreatedAt = time.Now()
	r.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	defer lock(r.mu)()

	p, ok := r.st.products[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	defer lock(r.mu)()

	products := []product.Product{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.st.products[id]; ok {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *productRepo) List(ctx context.Context) ([]product.Product, error) {
	defer lock(r.mu)()

	products := make([]product.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *productRepo) RestockBelow(ctx context.Context, threshold, qty int) ([]product.Product, error) {
	defer lock(r.mu)()

	updated := []product.Product{}
	for id, p := range r.st.products {
		if p.Stock < threshold {
			p.Stock += qty
			r.st.products[id] = p
			updated = append(updated, p)
		}
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].ID < updated[j].ID })
	return updated, nil
}

// ---------- orders ----------

type orderRepo struct {
	st *state
	mu *sync.Mutex
}

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	defer lock(r.mu)()

	if _, ok := r.st.customers[o.CustomerID]; !ok {
		return fmt.Errorf("customer %d: %w", o.CustomerID, xerrors.ErrNotFound)
	}
	for _, productID := range o.ProductIDs {
		if _, ok := r.st.products[productID]; !ok {
			return fmt.Errorf("product %d: %w", productID, xerrors.ErrNotFound)
		}
	}

	o.ID = r.st.nextOrderID
	r.st.nextOrderID++
	o.OrderDate = time.Now()

	stored := *o
	stored.ProductIDs = append([]int64(nil), o.ProductIDs...)
	r.st.orders[o.ID] = stored
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	defer lock(r.mu)()

	o, ok := r.st.orders[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	o.ProductIDs = append([]int64(nil), o.ProductIDs...)
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, filters *order.ListFilters) ([]order.OrderInfo, error) {
	defer lock(r.mu)()

	orders := []order.OrderInfo{}
	for _, o := range r.st.orders {
		if filters != nil && filters.Status != "" && o.Status != filters.Status {
			continue
		}
		if filters != nil && !filters.Since.IsZero() && o.OrderDate.Before(filters.Since) {
			continue
		}

		info := order.OrderInfo{Order: o}
		info.ProductIDs = append([]int64(nil), o.ProductIDs...)
		if c, ok := r.st.customers[o.CustomerID]; ok {
			info.CustomerEmail = c.Email
		}
		orders = append(orders, info)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}
