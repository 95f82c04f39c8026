package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint64) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	ListActive(ctx context.Context) ([]Product, error)
}
