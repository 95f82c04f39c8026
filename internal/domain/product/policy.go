package product

import (
	"github.com/shopspring/decimal"

	"loan-origination-backend/pkg/finance"
)

// AmountWithinLimits reports minAmount <= amount <= maxAmount, inclusive at
// both ends.
func AmountWithinLimits(p *Product, amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}

// TermWithinLimits reports minTermMonths <= term <= maxTermMonths.
func TermWithinLimits(p *Product, termMonths int) bool {
	return termMonths >= p.MinTermMonths && termMonths <= p.MaxTermMonths
}

// EligibleForAutoApproval is true only when the product carries an
// auto-approval limit and the amount does not exceed it.
func EligibleForAutoApproval(p *Product, amount decimal.Decimal) bool {
	return p.AutoApprovalLimit.Valid && amount.LessThanOrEqual(p.AutoApprovalLimit.Decimal)
}

// ProcessingFee is amount * processingFeeRate, zero when the rate is unset.
func ProcessingFee(p *Product, amount decimal.Decimal) decimal.Decimal {
	if !p.ProcessingFeeRate.Valid {
		return decimal.Zero
	}
	return amount.Mul(p.ProcessingFeeRate.Decimal).Round(2)
}

// MonthlyPayment checks amount and term against the product's bounds, then
// delegates to the calculator using rateOverride when given, else the
// product's default rate.
func MonthlyPayment(p *Product, amount decimal.Decimal, termMonths int, rateOverride *decimal.Decimal) (decimal.Decimal, error) {
	if !AmountWithinLimits(p, amount) || !TermWithinLimits(p, termMonths) {
		return decimal.Decimal{}, ErrOutOfBounds
	}
	rate := p.DefaultInterestRate
	if rateOverride != nil {
		rate = *rateOverride
	}
	return finance.MonthlyPayment(amount, termMonths, rate)
}
