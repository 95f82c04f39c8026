package uow

import (
	"context"

	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/customer"
	"loan-origination-backend/internal/domain/product"
)

type Repos struct {
	Applications application.Repository
	Products     product.Repository
	Customers    customer.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: resolve the application first, then pass it in
	WithinApplicationTx(ctx context.Context, number string, fn func(r Repos, a *application.Application) error) error
}
