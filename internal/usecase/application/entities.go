package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loan-origination-backend/internal/domain/application"
)

type CreateInput struct {
	CustomerID          string              `json:"customer_id"`
	ProductID           uint64              `json:"product_id"`
	LoanType            domain.LoanType     `json:"loan_type"`
	RequestedAmount     decimal.Decimal     `json:"requested_amount"`
	RequestedTermMonths int                 `json:"requested_term_months"`
	Purpose             string              `json:"purpose"`
	DeclaredIncome      decimal.NullDecimal `json:"declared_income"`
	DebtToIncomeRatio   decimal.NullDecimal `json:"debt_to_income_ratio"`
	SaveAsDraft         bool                `json:"save_as_draft"`
	AutoSubmit          bool                `json:"auto_submit"`
}

type ApproveInput struct {
	Number     string          `json:"-"`
	Amount     decimal.Decimal `json:"approved_amount"`
	TermMonths int             `json:"approved_term_months"`
	Rate       decimal.Decimal `json:"approved_rate"`
	Reason     string          `json:"reason"`
	ApprovedBy string          `json:"approved_by"`
}

type UpdateRequestedTermsInput struct {
	Number              string          `json:"-"`
	RequestedAmount     decimal.Decimal `json:"requested_amount"`
	RequestedTermMonths int             `json:"requested_term_months"`
	Purpose             string          `json:"purpose"`
}

type ApplicationDTO struct {
	ApplicationNumber string `json:"application_number"`
	CustomerID        string `json:"customer_id"`
	ProductID         uint64 `json:"product_id"`
	LoanType          string `json:"loan_type"`
	LoanTypeLabel     string `json:"loan_type_label"`
	Purpose           string `json:"purpose"`

	RequestedAmount     decimal.Decimal `json:"requested_amount"`
	RequestedTermMonths int             `json:"requested_term_months"`

	ApprovedAmount     decimal.NullDecimal `json:"approved_amount"`
	ApprovedTermMonths *int                `json:"approved_term_months"`
	ApprovedRate       decimal.NullDecimal `json:"approved_rate"`
	MonthlyPayment     decimal.NullDecimal `json:"monthly_payment"`

	CreditScore int `json:"credit_score"`
	RiskScore   int `json:"risk_score"`

	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	CurrentStep string `json:"current_step"`
	AssignedTo  string `json:"assigned_to"`
	Priority    int    `json:"priority"`

	DecisionReason  string              `json:"decision_reason,omitempty"`
	DecisionDate    *time.Time          `json:"decision_date,omitempty"`
	ApprovedBy      string              `json:"approved_by,omitempty"`
	RejectedBy      string              `json:"rejected_by,omitempty"`
	DisbursedBy     string              `json:"disbursed_by,omitempty"`
	DisbursedAmount decimal.NullDecimal `json:"disbursed_amount"`
	DisbursedDate   *time.Time          `json:"disbursed_date,omitempty"`

	SubmittedDate *time.Time `json:"submitted_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AutoApprovalResult distinguishes a real approval from the documented no-op
// on ineligible applications.
type AutoApprovalResult struct {
	Application *ApplicationDTO `json:"application"`
	AutoApproved bool           `json:"auto_approved"`
}

func toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationNumber:   a.ApplicationNumber,
		CustomerID:          a.CustomerID,
		ProductID:           a.ProductID,
		LoanType:            string(a.LoanType),
		LoanTypeLabel:       domain.LoanTypeLabel(a.LoanType),
		Purpose:             a.Purpose,
		RequestedAmount:     a.RequestedAmount,
		RequestedTermMonths: a.RequestedTermMonths,
		ApprovedAmount:      a.ApprovedAmount,
		ApprovedTermMonths:  a.ApprovedTermMonths,
		ApprovedRate:        a.ApprovedRate,
		MonthlyPayment:      a.MonthlyPayment,
		CreditScore:         a.CreditScore,
		RiskScore:           a.RiskScore,
		Status:              string(a.Status),
		StatusLabel:         domain.StatusLabel(a.Status),
		CurrentStep:         a.CurrentStep,
		AssignedTo:          a.AssignedTo,
		Priority:            a.Priority,
		DecisionReason:      a.DecisionReason,
		DecisionDate:        a.DecisionDate,
		ApprovedBy:          a.ApprovedBy,
		RejectedBy:          a.RejectedBy,
		DisbursedBy:         a.DisbursedBy,
		DisbursedAmount:     a.DisbursedAmount,
		DisbursedDate:       a.DisbursedDate,
		SubmittedDate:       a.SubmittedDate,
		DueDate:             a.DueDate,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func toDTOs(apps []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out
}
