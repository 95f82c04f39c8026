package productmock

import (
	"context"

	"loan-origination-backend/internal/domain/product"
)

var _ product.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies product.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, p *product.Product) error
	GetByIDFn    func(ctx context.Context, id uint64) (*product.Product, error)
	GetByCodeFn  func(ctx context.Context, code string) (*product.Product, error)
	ListActiveFn func(ctx context.Context) ([]product.Product, error)
}

func (m *Repo) Create(ctx context.Context, p *product.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*product.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, product.ErrNotFound
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, product.ErrNotFound
}

func (m *Repo) ListActive(ctx context.Context) ([]product.Product, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}
