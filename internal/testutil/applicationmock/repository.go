package applicationmock

import (
	"context"

	domain "loan-origination-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies application.Repository.
// Fill in only the fields a test needs.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Application) error
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.Application, error)
	GetByNumberFn    func(ctx context.Context, number string) (*domain.Application, error)
	GetAnyByNumberFn func(ctx context.Context, number string) (*domain.Application, error)
	ListFn           func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	SaveFn           func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByNumber(ctx context.Context, number string) (*domain.Application, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetAnyByNumber(ctx context.Context, number string) (*domain.Application, error) {
	if m.GetAnyByNumberFn != nil {
		return m.GetAnyByNumberFn(ctx, number)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
