package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"loan-origination-backend/internal/domain/product"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*product.Product, error) {
	var out product.Product
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, product.ErrNotFound
	}
	return &out, res.Error
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	var out product.Product
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, product.ErrNotFound
	}
	return &out, res.Error
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]product.Product, error) {
	var out []product.Product
	res := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&out)
	return out, res.Error
}
