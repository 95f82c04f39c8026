package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	domain "loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/customer"
	"loan-origination-backend/internal/domain/product"
	"loan-origination-backend/internal/domain/risk"
	"loan-origination-backend/internal/domain/uow"
	"loan-origination-backend/internal/notification"
	"loan-origination-backend/pkg/finance"
	"loan-origination-backend/pkg/id"
)

// minRequestedAmount is the floor any application must clear regardless of
// product limits.
var minRequestedAmount = decimal.NewFromInt(1000)

const maxTermMonths = 360

const (
	stepIntake = "intake"
	stepReview = "review"
	stepClosed = "closed"
)

type Usecase struct {
	uow      uow.UnitOfWork
	bureau   risk.Bureau
	notifier notification.Notifier
}

func NewUsecase(tx uow.UnitOfWork, bureau risk.Bureau, notifier notification.Notifier) *Usecase {
	return &Usecase{uow: tx, bureau: bureau, notifier: notifier}
}

// ---- creation ----

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if !domain.ValidLoanType(in.LoanType) {
		return nil, domain.ErrInvalidArgument
	}
	if in.RequestedAmount.LessThan(minRequestedAmount) {
		return nil, domain.ErrInvalidArgument
	}
	if in.RequestedTermMonths < 1 || in.RequestedTermMonths > maxTermMonths {
		return nil, domain.ErrInvalidArgument
	}
	if in.CustomerID == "" || in.ProductID == 0 {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now().UTC()
	var created *domain.Application

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cust, err := r.Customers.GetByCustomerID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !cust.Eligible() {
			return customer.ErrNotEligible
		}

		prod, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !product.AmountWithinLimits(prod, in.RequestedAmount) ||
			!product.TermWithinLimits(prod, in.RequestedTermMonths) {
			return product.ErrOutOfBounds
		}

		score, err := u.bureau.Score(ctx, in.CustomerID)
		if err != nil {
			return err
		}

		a := &domain.Application{
			ApplicationNumber:   id.NewApplicationNumber(now),
			CustomerID:          in.CustomerID,
			ProductID:           in.ProductID,
			LoanType:            in.LoanType,
			Purpose:             in.Purpose,
			RequestedAmount:     in.RequestedAmount,
			RequestedTermMonths: in.RequestedTermMonths,
			DeclaredIncome:      in.DeclaredIncome,
			DebtToIncomeRatio:   in.DebtToIncomeRatio,
			CreditScore:         score,
			RiskScore:           risk.RiskScore(score, in.DebtToIncomeRatio),
			Status:              domain.StatusDraft,
			CurrentStep:         stepIntake,
			Priority:            domain.DefaultPriority,
			Version:             1,
		}
		if in.AutoSubmit && !in.SaveAsDraft {
			a.Status = domain.StatusSubmitted
			a.CurrentStep = stepReview
			a.SubmittedDate = &now
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created.Status == domain.StatusSubmitted {
		u.notify(ctx, created)
	}
	return toDTO(created), nil
}

// ---- reads ----

func (u *Usecase) Get(ctx context.Context, number string) (*ApplicationDTO, error) {
	var out *domain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(out), nil
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) ([]ApplicationDTO, error) {
	var apps []domain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		apps, err = r.Applications.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toDTOs(apps), nil
}

// ComputeSchedule exposes the amortization plan without touching any record.
func (u *Usecase) ComputeSchedule(ctx context.Context, principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) ([]finance.Installment, error) {
	return finance.Schedule(principal, termMonths, annualRate)
}

// ---- workflow transitions ----

func (u *Usecase) Submit(ctx context.Context, number string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventSubmit); err != nil {
			return err
		}
		if !a.RequestedAmount.IsPositive() || a.RequestedTermMonths <= 0 ||
			a.CustomerID == "" || a.ProductID == 0 {
			return domain.ErrInvalidArgument
		}
		now := time.Now().UTC()
		a.Status = domain.StatusSubmitted
		a.CurrentStep = stepReview
		a.SubmittedDate = &now
		return nil
	})
}

func (u *Usecase) StartReview(ctx context.Context, number, reviewer string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventStartReview); err != nil {
			return err
		}
		a.Status = domain.StatusUnderReview
		if reviewer != "" {
			a.AssignedTo = reviewer
		}
		return nil
	})
}

func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApplicationDTO, error) {
	if in.Rate.IsNegative() || in.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.ErrInvalidArgument
	}
	if !in.Amount.IsPositive() || in.TermMonths <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return u.transition(ctx, in.Number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventApprove); err != nil {
			return err
		}
		prod, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		if !risk.MeetsCreditScore(a.CreditScore, prod) || !risk.MeetsIncome(a.DeclaredIncome, prod) {
			return customer.ErrNotEligible
		}
		rate := in.Rate
		payment, err := product.MonthlyPayment(prod, in.Amount, in.TermMonths, &rate)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		term := in.TermMonths
		a.Status = domain.StatusApproved
		a.CurrentStep = stepClosed
		a.ApprovedAmount = decimal.NewNullDecimal(in.Amount)
		a.ApprovedTermMonths = &term
		a.ApprovedRate = decimal.NewNullDecimal(in.Rate)
		a.MonthlyPayment = decimal.NewNullDecimal(payment)
		a.DecisionReason = in.Reason
		a.DecisionDate = &now
		a.ApprovedBy = in.ApprovedBy
		a.ApprovedDate = &now
		return nil
	})
}

func (u *Usecase) Reject(ctx context.Context, number, reason, rejectedBy string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventReject); err != nil {
			return err
		}
		now := time.Now().UTC()
		a.Status = domain.StatusRejected
		a.CurrentStep = stepClosed
		a.DecisionReason = reason
		a.DecisionDate = &now
		a.RejectedBy = rejectedBy
		a.RejectedDate = &now
		return nil
	})
}

func (u *Usecase) Cancel(ctx context.Context, number, reason string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventCancel); err != nil {
			return err
		}
		now := time.Now().UTC()
		a.Status = domain.StatusCancelled
		a.CurrentStep = stepClosed
		a.DecisionReason = reason
		a.DecisionDate = &now
		return nil
	})
}

func (u *Usecase) Disburse(ctx context.Context, number, disbursedBy string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventDisburse); err != nil {
			return err
		}
		if !a.ApprovedAmount.Valid {
			return domain.ErrInvalidArgument
		}
		now := time.Now().UTC()
		due := now.AddDate(0, 1, 0)
		a.Status = domain.StatusDisbursed
		a.CurrentStep = stepClosed
		a.DisbursedBy = disbursedBy
		a.DisbursedDate = &now
		a.DisbursedAmount = a.ApprovedAmount
		a.DueDate = &due
		return nil
	})
}

func (u *Usecase) RequestAdditionalInfo(ctx context.Context, number, info string) (*ApplicationDTO, error) {
	return u.transition(ctx, number, func(r uow.Repos, a *domain.Application) error {
		if err := domain.Guard(a.Status, domain.EventRequestInfo); err != nil {
			return err
		}
		a.Status = domain.StatusPendingInfo
		a.CurrentStep = stepReview
		a.DecisionReason = info
		return nil
	})
}

// ---- field updates (no state machine) ----

func (u *Usecase) Assign(ctx context.Context, number, assignee string) (*ApplicationDTO, error) {
	if assignee == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.update(ctx, number, func(r uow.Repos, a *domain.Application) error {
		a.AssignedTo = assignee
		return nil
	})
}

// BulkAssign assigns each listed application; applications that fail keep
// their previous assignee and are reported back by number.
func (u *Usecase) BulkAssign(ctx context.Context, numbers []string, assignee string) (assigned []ApplicationDTO, failed []string, err error) {
	if assignee == "" {
		return nil, nil, domain.ErrInvalidArgument
	}
	for _, number := range numbers {
		dto, aerr := u.Assign(ctx, number, assignee)
		if aerr != nil {
			log.Printf("bulk assign %s: %v", number, aerr)
			failed = append(failed, number)
			continue
		}
		assigned = append(assigned, *dto)
	}
	return assigned, failed, nil
}

func (u *Usecase) UpdatePriority(ctx context.Context, number string, priority int) (*ApplicationDTO, error) {
	if priority < domain.MinPriority || priority > domain.MaxPriority {
		return nil, domain.ErrInvalidArgument
	}
	return u.update(ctx, number, func(r uow.Repos, a *domain.Application) error {
		a.Priority = priority
		return nil
	})
}

// UpdateRequestedTerms edits a still-editable application. Bounds are
// re-checked against the product, same as at creation.
func (u *Usecase) UpdateRequestedTerms(ctx context.Context, in UpdateRequestedTermsInput) (*ApplicationDTO, error) {
	if in.RequestedAmount.LessThan(minRequestedAmount) ||
		in.RequestedTermMonths < 1 || in.RequestedTermMonths > maxTermMonths {
		return nil, domain.ErrInvalidArgument
	}
	return u.update(ctx, in.Number, func(r uow.Repos, a *domain.Application) error {
		if !domain.IsEditable(a.Status) {
			return domain.ErrNotEditable
		}
		prod, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		if !product.AmountWithinLimits(prod, in.RequestedAmount) ||
			!product.TermWithinLimits(prod, in.RequestedTermMonths) {
			return product.ErrOutOfBounds
		}
		a.RequestedAmount = in.RequestedAmount
		a.RequestedTermMonths = in.RequestedTermMonths
		if in.Purpose != "" {
			a.Purpose = in.Purpose
		}
		return nil
	})
}

// ---- auto approval ----

func (u *Usecase) CheckAutoApprovalEligibility(ctx context.Context, number string) (bool, error) {
	eligible := false
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		prod, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		eligible = product.EligibleForAutoApproval(prod, a.RequestedAmount)
		return nil
	})
	return eligible, err
}

// ProcessAutoApproval approves an eligible application at its requested terms
// and the product's default rate. An ineligible application is returned
// unchanged; the flag on the result says which happened.
func (u *Usecase) ProcessAutoApproval(ctx context.Context, number, actor string) (*AutoApprovalResult, error) {
	var (
		eligible bool
		rate     decimal.Decimal
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		prod, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return err
		}
		eligible = product.EligibleForAutoApproval(prod, a.RequestedAmount)
		rate = prod.DefaultInterestRate
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !eligible {
		log.Printf("auto approval skipped for %s: amount above product limit", number)
		dto, err := u.Get(ctx, number)
		if err != nil {
			return nil, err
		}
		return &AutoApprovalResult{Application: dto, AutoApproved: false}, nil
	}

	current, err := u.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	dto, err := u.Approve(ctx, ApproveInput{
		Number:     number,
		Amount:     current.RequestedAmount,
		TermMonths: current.RequestedTermMonths,
		Rate:       rate,
		Reason:     "auto-approved within product limit",
		ApprovedBy: actor,
	})
	if err != nil {
		return nil, err
	}
	return &AutoApprovalResult{Application: dto, AutoApproved: true}, nil
}

// ---- soft delete ----

func (u *Usecase) SoftDelete(ctx context.Context, number, deletedBy string) error {
	_, err := u.withRetry(ctx, number, func(r uow.Repos, a *domain.Application) error {
		a.IsDeleted = true
		a.DeletedBy = deletedBy
		return nil
	})
	return err
}

func (u *Usecase) Restore(ctx context.Context, number string) (*ApplicationDTO, error) {
	var out *domain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetAnyByNumber(ctx, number)
		if err != nil {
			return err
		}
		a.IsDeleted = false
		a.DeletedBy = ""
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(out), nil
}

// ---- plumbing ----

// transition runs a guarded mutation and notifies after commit.
func (u *Usecase) transition(ctx context.Context, number string, fn func(r uow.Repos, a *domain.Application) error) (*ApplicationDTO, error) {
	out, err := u.withRetry(ctx, number, fn)
	if err != nil {
		return nil, err
	}
	u.notify(ctx, out)
	return toDTO(out), nil
}

// update runs an unguarded field mutation, no notification.
func (u *Usecase) update(ctx context.Context, number string, fn func(r uow.Repos, a *domain.Application) error) (*ApplicationDTO, error) {
	out, err := u.withRetry(ctx, number, fn)
	if err != nil {
		return nil, err
	}
	return toDTO(out), nil
}

// withRetry executes the read-modify-write inside a transaction and retries
// exactly once with a fresh read on an optimistic-lock conflict.
func (u *Usecase) withRetry(ctx context.Context, number string, fn func(r uow.Repos, a *domain.Application) error) (*domain.Application, error) {
	var out *domain.Application
	run := func() error {
		return u.uow.WithinApplicationTx(ctx, number, func(r uow.Repos, a *domain.Application) error {
			if err := fn(r, a); err != nil {
				return err
			}
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			out = a
			return nil
		})
	}
	err := run()
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		log.Printf("optimistic-lock conflict on %s, retrying once", number)
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// notify dispatches the status-change event; failures are logged, never
// propagated, and cannot undo the committed transition.
func (u *Usecase) notify(ctx context.Context, a *domain.Application) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.NotifyStatusChange(ctx, a); err != nil {
		log.Printf("notify status change for %s: %v", a.ApplicationNumber, err)
	}
}
