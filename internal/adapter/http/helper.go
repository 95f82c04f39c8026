package http

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// operatorID is the acting back-office user, taken from the same header the
// idempotency middleware already validated.
func operatorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-Operator-Id"))
}

func nullDecimalFromPtr(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*f), Valid: true}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
