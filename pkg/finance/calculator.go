package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidArgument = errors.New("invalid calculation input")

var (
	one          = decimal.NewFromInt(1)
	monthsInYear = decimal.NewFromInt(12)
)

// money rounds to 2 decimal places, half up.
func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// MonthlyPayment computes the fixed installment for an amortizing loan.
// annualRate is a fraction (0.12 = 12% p.a.). A zero rate yields a linear
// payoff of principal/termMonths.
func MonthlyPayment(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) (decimal.Decimal, error) {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) || annualRate.IsNegative() {
		return decimal.Decimal{}, ErrInvalidArgument
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return money(principal.Div(n)), nil
	}
	r := annualRate.Div(monthsInYear)
	// P * r * (1+r)^n / ((1+r)^n - 1)
	factor := one.Add(r).Pow(n)
	payment := principal.Mul(r).Mul(factor).Div(factor.Sub(one))
	return money(payment), nil
}

// TotalPayment is the sum of all installments over the term.
func TotalPayment(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) (decimal.Decimal, error) {
	pmt, err := MonthlyPayment(principal, termMonths, annualRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return pmt.Mul(decimal.NewFromInt(int64(termMonths))), nil
}

// TotalInterest is the cost of the loan above the borrowed principal.
func TotalInterest(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) (decimal.Decimal, error) {
	total, err := TotalPayment(principal, termMonths, annualRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return total.Sub(principal), nil
}

// Schedule materializes the full amortization plan. Monetary fields are
// rounded every period so the printed rows add up; the last installment's
// principal portion absorbs the rounding residue and closes the balance at
// exactly zero.
func Schedule(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) ([]Installment, error) {
	payment, err := MonthlyPayment(principal, termMonths, annualRate)
	if err != nil {
		return nil, err
	}
	r := decimal.Zero
	if !annualRate.IsZero() {
		r = annualRate.Div(monthsInYear)
	}

	rows := make([]Installment, 0, termMonths)
	balance := principal
	for m := 1; m <= termMonths; m++ {
		interest := money(balance.Mul(r))
		principalPart := payment.Sub(interest)
		pay := payment
		if m == termMonths {
			principalPart = balance
			pay = principalPart.Add(interest)
		}
		balance = balance.Sub(principalPart)
		rows = append(rows, Installment{
			Month:     m,
			Payment:   pay,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return rows, nil
}
