package currency_test

import (
	"testing"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/utils/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestToLocal(t *testing.T) {
	got := currency.ToLocal(decimal.NewFromInt(10), decimal.NewFromFloat(36.5))
	assert.True(t, got.Equal(decimal.NewFromInt(365)), "got %s", got)
}

func TestToBase(t *testing.T) {
	got, err := currency.ToBase(decimal.NewFromInt(365), decimal.NewFromFloat(36.5))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestRoundTrip(t *testing.T) {
	rates := []decimal.Decimal{
		decimal.NewFromFloat(36.5),
		decimal.NewFromFloat(298.14),
		decimal.NewFromInt(1),
		decimal.NewFromFloat(0.85),
	}
	amounts := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromFloat(10.50),
		decimal.NewFromFloat(9999.99),
	}

	for _, rate := range rates {
		for _, amount := range amounts {
			local := currency.ToLocal(amount, rate)
			back, err := currency.ToBase(local, rate)
			require.NoError(t, err)
			assert.True(t, back.Equal(amount), "amount %s at rate %s came back as %s", amount, rate, back)
		}
	}
}

func TestToBase_ZeroRate(t *testing.T) {
	_, err := currency.ToBase(decimal.NewFromInt(100), decimal.Zero)
	require.Error(t, err)

	var divErr *apperrors.DivisionByZeroError
	require.ErrorAs(t, err, &divErr)
	assert.True(t, divErr.Amount.Equal(decimal.NewFromInt(100)))
}

func TestFormatDual(t *testing.T) {
	tests := []struct {
		name        string
		amountBase  *decimal.Decimal
		amountLocal *decimal.Decimal
		want        string
	}{
		{
			name:        "both amounts present",
			amountBase:  decimalPtr(decimal.NewFromFloat(10.5)),
			amountLocal: decimalPtr(decimal.NewFromFloat(383.25)),
			want:        "$10.50 / Bs. 383.25",
		},
		{
			name:        "missing base amount",
			amountBase:  nil,
			amountLocal: decimalPtr(decimal.NewFromInt(100)),
			want:        currency.AmountUnavailable,
		},
		{
			name:        "missing local amount",
			amountBase:  decimalPtr(decimal.NewFromInt(10)),
			amountLocal: nil,
			want:        currency.AmountUnavailable,
		},
		{
			name:        "both missing",
			amountBase:  nil,
			amountLocal: nil,
			want:        currency.AmountUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.FormatDual(tt.amountBase, tt.amountLocal))
		})
	}
}
