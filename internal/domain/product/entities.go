package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("loan product not found")
	ErrOutOfBounds = errors.New("amount or term out of bounds")
)

type Product struct {
	ID   uint64 `gorm:"primaryKey;column:id" json:"-"`
	Code string `gorm:"size:32;uniqueIndex:ux_products_code" json:"code"`
	Name string `gorm:"size:128" json:"name"`

	MinAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"min_amount"`
	MaxAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"max_amount"`
	MinTermMonths int             `json:"min_term_months"`
	MaxTermMonths int             `json:"max_term_months"`

	MinInterestRate     decimal.Decimal `gorm:"type:decimal(8,6)" json:"min_interest_rate"`
	MaxInterestRate     decimal.Decimal `gorm:"type:decimal(8,6)" json:"max_interest_rate"`
	DefaultInterestRate decimal.Decimal `gorm:"type:decimal(8,6)" json:"default_interest_rate"`

	AutoApprovalLimit decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"auto_approval_limit"`
	ProcessingFeeRate decimal.NullDecimal `gorm:"type:decimal(8,6)" json:"processing_fee_rate"`

	RequiresCollateral bool `json:"requires_collateral"`
	RequiresGuarantor  bool `json:"requires_guarantor"`

	MinCreditScore int                 `json:"min_credit_score"`
	MinIncome      decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"min_income"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }
