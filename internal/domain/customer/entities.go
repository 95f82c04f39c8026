package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("customer not found")
	ErrNotEligible = errors.New("customer is not eligible")
)

type Customer struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string `gorm:"size:32;uniqueIndex:ux_customers_customer_id" json:"customer_id"`
	FullName   string `gorm:"size:128" json:"full_name"`
	Email      string `gorm:"size:128" json:"email"`

	IsKycComplete bool `gorm:"default:false" json:"is_kyc_complete"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// Eligible reports whether the customer may open a loan application.
func (c *Customer) Eligible() bool { return c.IsKycComplete && c.IsActive }
