package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfficialRateSource is the quote source treated as authoritative for all
// currency conversions. At most one quote per source label is honored.
const OfficialRateSource = "oficial"

// RateQuote is one exchange quote as returned by the external FX endpoint.
// Quotes are never mutated, only replaced wholesale on refresh.
type RateQuote struct {
	Source    string          `json:"fuente"`
	Name      string          `json:"nombre"`
	Buy       decimal.Decimal `json:"compra"`
	Sell      decimal.Decimal `json:"venta"`
	Average   decimal.Decimal `json:"promedio"`
	UpdatedAt time.Time       `json:"fechaActualizacion"`
}

// RateSnapshot is the cached result of the last successful quote fetch.
// Workflows read snapshots; only the refresh cycle writes new ones.
type RateSnapshot struct {
	Quotes    []RateQuote
	FetchedAt time.Time
}

// OfficialRate selects the average of the quote whose source is the official
// label. The second return is false when no official quote is present.
func OfficialRate(quotes []RateQuote) (decimal.Decimal, bool) {
	for _, q := range quotes {
		if q.Source == OfficialRateSource {
			return q.Average, true
		}
	}
	return decimal.Zero, false
}
