// internal/service/customer/customer.go
package customer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository"

	"go.uber.org/zap"
)

type CustomerService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewCustomerService(store repository.Store, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger,
	}
}

// CreateCustomer validates the request and persists exactly one customer.
// Validation happens before any write, so a failed call leaves no state.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the unique index on email is the
	// backstop that makes the check race-safe.
	exists, err := s.store.Customers().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s: %w", req.Email, xerrors.ErrDuplicateEmail)
	}

	c := newCustomer(req)
	if err := s.store.Customers().Create(ctx, c); err != nil {
		if !xerrors.IsDomain(err) {
			s.logger.Error("failed to create customer", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("email", c.Email),
	)

	return c, nil
}

// BulkCreateCustomers processes the batch inside one transactional scope
// with per-record failure containment: a record that fails validation or
// duplicates an email (stored or earlier in the batch) is reported in the
// error list without blocking the rest. Structural store failures abort the
// whole batch and roll everything back.
func (s *CustomerService) BulkCreateCustomers(ctx context.Context, reqs []customer.CreateCustomerRequest) ([]customer.Customer, []string, error) {
	created := []customer.Customer{}
	errs := []string{}

	err := s.store.RunAtomic(ctx, func(tx repository.Store) error {
		seen := map[string]bool{}

		for i := range reqs {
			req := &reqs[i]

			if err := validateCustomer(req); err != nil {
				errs = append(errs, err.Error())
				continue
			}

			if seen[req.Email] {
				errs = append(errs, fmt.Sprintf("Email %s already exists.", req.Email))
				continue
			}
			exists, err := tx.Customers().ExistsByEmail(ctx, req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email existence: %w", err)
			}
			if exists {
				errs = append(errs, fmt.Sprintf("Email %s already exists.", req.Email))
				continue
			}

			// Each insert runs in its own nested scope. A duplicate that
			// slips past the precheck and trips the unique index then
			// rolls back only this record, not the whole batch.
			c := newCustomer(req)
			err = tx.RunAtomic(ctx, func(tx repository.Store) error {
				return tx.Customers().Create(ctx, c)
			})
			if err != nil {
				if xerrors.IsDomain(err) {
					errs = append(errs, fmt.Sprintf("Email %s already exists.", req.Email))
					continue
				}
				return fmt.Errorf("failed to create customer: %w", err)
			}

			seen[req.Email] = true
			created = append(created, *c)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("bulk customer create aborted", zap.Error(err))
		return nil, nil, err
	}

	s.logger.Info("bulk customer create finished",
		zap.Int("created", len(created)),
		zap.Int("failed", len(errs)),
	)

	return created, errs, nil
}

// ListCustomers retrieves all customers
func (s *CustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.store.Customers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func newCustomer(req *customer.CreateCustomerRequest) *customer.Customer {
	return &customer.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: sql.NullString{String: req.Phone, Valid: req.Phone != ""},
	}
}

func validateCustomer(req *customer.CreateCustomerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required: %w", xerrors.ErrInvalidInput)
	}
	if req.Email == "" {
		return fmt.Errorf("email is required: %w", xerrors.ErrInvalidInput)
	}
	if req.Phone != "" {
		return validatePhone(req.Phone)
	}
	return nil
}

// validatePhone accepts numbers like +1234567890, 123-456-7890 or plain
// digits; anything else is rejected.
func validatePhone(phone string) error {
	if strings.HasPrefix(phone, "+") || strings.Contains(phone, "-") || isDigits(phone) {
		return nil
	}
	return fmt.Errorf("phone %s: %w", phone, xerrors.ErrInvalidPhone)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
