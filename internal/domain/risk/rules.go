package risk

import (
	"github.com/shopspring/decimal"

	"loan-origination-backend/internal/domain/product"
)

// MeetsCreditScore checks the applicant's score against the product floor.
// Products with no floor (0) accept any score.
func MeetsCreditScore(score int, p *product.Product) bool {
	return p.MinCreditScore == 0 || score >= p.MinCreditScore
}

// MeetsIncome checks declared income against the product floor when the
// product sets one.
func MeetsIncome(income decimal.NullDecimal, p *product.Product) bool {
	if !p.MinIncome.Valid {
		return true
	}
	if !income.Valid {
		return false
	}
	return income.Decimal.GreaterThanOrEqual(p.MinIncome.Decimal)
}

// RiskScore derives a coarse 0-100 score from credit score and debt-to-income
// ratio; higher means riskier. Credit scores span 300-850.
func RiskScore(creditScore int, dti decimal.NullDecimal) int {
	score := (850 - creditScore) * 100 / 550
	if score < 0 {
		score = 0
	}
	if dti.Valid {
		// Every 10 points of DTI above 40% adds 10 risk points.
		excess := dti.Decimal.Sub(decimal.NewFromFloat(0.4))
		if excess.IsPositive() {
			score += int(excess.Mul(decimal.NewFromInt(100)).IntPart())
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}
