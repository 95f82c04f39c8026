package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusPendingInfo Status = "PENDING_INFO"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusCancelled   Status = "CANCELLED"
	StatusDisbursed   Status = "DISBURSED"
)

type LoanType string

const (
	TypePersonal  LoanType = "PERSONAL"
	TypeBusiness  LoanType = "BUSINESS"
	TypeMortgage  LoanType = "MORTGAGE"
	TypeCar       LoanType = "CAR"
	TypeConsumer  LoanType = "CONSUMER"
	TypeEducation LoanType = "EDUCATION"
	TypeMedical   LoanType = "MEDICAL"
)

// statusLabels maps each status to its display text. Labels live in a lookup
// table rather than on the type so wire values stay decoupled from rendering.
var statusLabels = map[Status]string{
	StatusDraft:       "Draft",
	StatusSubmitted:   "Submitted",
	StatusPending:     "Pending",
	StatusUnderReview: "Under Review",
	StatusPendingInfo: "Additional Info Requested",
	StatusApproved:    "Approved",
	StatusRejected:    "Rejected",
	StatusCancelled:   "Cancelled",
	StatusDisbursed:   "Disbursed",
}

var loanTypeLabels = map[LoanType]string{
	TypePersonal:  "Personal Loan",
	TypeBusiness:  "Business Loan",
	TypeMortgage:  "Mortgage",
	TypeCar:       "Car Loan",
	TypeConsumer:  "Consumer Loan",
	TypeEducation: "Education Loan",
	TypeMedical:   "Medical Loan",
}

func StatusLabel(s Status) string { return statusLabels[s] }

func LoanTypeLabel(t LoanType) string { return loanTypeLabels[t] }

func ValidLoanType(t LoanType) bool {
	_, ok := loanTypeLabels[t]
	return ok
}

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

type Application struct {
	ID                uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationNumber string `gorm:"size:32;uniqueIndex:ux_applications_number" json:"application_number"`

	CustomerID string   `gorm:"size:32;index:idx_applications_customer" json:"customer_id"`
	ProductID  uint64   `gorm:"index:idx_applications_product" json:"product_id"`
	LoanType   LoanType `gorm:"size:16" json:"loan_type"`
	Purpose    string   `gorm:"type:text" json:"purpose"`

	RequestedAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"requested_amount"`
	RequestedTermMonths int             `json:"requested_term_months"`

	ApprovedAmount     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"approved_amount"`
	ApprovedTermMonths *int                `json:"approved_term_months"`
	ApprovedRate       decimal.NullDecimal `gorm:"type:decimal(8,6)" json:"approved_rate"`
	MonthlyPayment     decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"monthly_payment"`

	DeclaredIncome    decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"declared_income"`
	DebtToIncomeRatio decimal.NullDecimal `gorm:"type:decimal(6,4)" json:"debt_to_income_ratio"`
	CreditScore       int                 `json:"credit_score"`
	RiskScore         int                 `json:"risk_score"`

	Status      Status `gorm:"size:16;index:idx_applications_status;default:'DRAFT'" json:"status"`
	CurrentStep string `gorm:"size:64" json:"current_step"`
	AssignedTo  string `gorm:"size:32;index:idx_applications_assignee" json:"assigned_to"`
	Priority    int    `gorm:"default:3" json:"priority"`

	DecisionReason string     `gorm:"type:text" json:"decision_reason"`
	DecisionDate   *time.Time `json:"decision_date"`
	ApprovedBy     string     `gorm:"size:32" json:"approved_by"`
	ApprovedDate   *time.Time `json:"approved_date"`
	RejectedBy     string     `gorm:"size:32" json:"rejected_by"`
	RejectedDate   *time.Time `json:"rejected_date"`
	DisbursedBy    string     `gorm:"size:32" json:"disbursed_by"`
	DisbursedDate  *time.Time `json:"disbursed_date"`
	DisbursedAmount decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"disbursed_amount"`

	SubmittedDate *time.Time `json:"submitted_date"`
	DueDate       *time.Time `json:"due_date"`

	// Soft delete is an explicit flag the service flips; no ORM hooks.
	IsDeleted bool   `gorm:"default:false;index" json:"-"`
	DeletedBy string `gorm:"size:32" json:"-"`

	// Optimistic concurrency: Save compares and bumps this column.
	Version int `gorm:"default:1" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }
