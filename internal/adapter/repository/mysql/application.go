package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "loan-origination-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) GetByNumber(ctx context.Context, number string) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).
		Where("application_number = ? AND is_deleted = ?", number, false).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) GetAnyByNumber(ctx context.Context, number string) (*domain.Application, error) {
	var out domain.Application
	res := r.db.WithContext(ctx).Where("application_number = ?", number).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ApplicationRepository) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.LoanType != "" {
		q = q.Where("loan_type = ?", f.LoanType)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.AssignedTo != "" {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	var out []domain.Application
	res := q.Order("priority ASC, created_at DESC").Find(&out)
	return out, res.Error
}

// Save writes all columns guarded by the version the row was loaded with.
// Zero rows affected means someone else saved first.
func (r *ApplicationRepository) Save(ctx context.Context, a *domain.Application) error {
	prev := a.Version
	a.Version = prev + 1
	res := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ? AND version = ?", a.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(a)
	if res.Error != nil {
		a.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		a.Version = prev
		return domain.ErrConcurrencyConflict
	}
	return nil
}
