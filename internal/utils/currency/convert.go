// Package currency holds the pure dual-currency conversion helpers. Every
// stored monetary value carries both a base (USD) and a local (Bs) amount,
// linked by the official rate in effect at creation time.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
)

// AmountUnavailable is rendered instead of failing when a display amount
// cannot be produced.
const AmountUnavailable = "monto no disponible"

// ToLocal converts a base-currency amount to local currency at the given rate.
func ToLocal(amountBase, rate decimal.Decimal) decimal.Decimal {
	return amountBase.Mul(rate)
}

// ToBase converts a local-currency amount back to base currency. The rate must
// be non-zero; callers validate rates before converting.
func ToBase(amountLocal, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsZero() {
		return decimal.Zero, &apperrors.DivisionByZeroError{Amount: amountLocal}
	}
	return amountLocal.Div(rate), nil
}

// FormatDual renders an amount in both currencies for display. Nil input
// yields the unavailable marker rather than an error; display formatting must
// never break a page.
func FormatDual(amountBase, amountLocal *decimal.Decimal) string {
	if amountBase == nil || amountLocal == nil {
		return AmountUnavailable
	}
	return fmt.Sprintf("$%s / Bs. %s", amountBase.StringFixed(2), amountLocal.StringFixed(2))
}
