package customermock

import (
	"context"

	"loan-origination-backend/internal/domain/customer"
)

var _ customer.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies customer.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, c *customer.Customer) error
	GetByCustomerIDFn func(ctx context.Context, customerID string) (*customer.Customer, error)
}

func (m *Repo) Create(ctx context.Context, c *customer.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, customerID string) (*customer.Customer, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, customer.ErrNotFound
}
