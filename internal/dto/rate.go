package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// RateQuoteResponse is one quote from the FX snapshot.
type RateQuoteResponse struct {
	Source    string          `json:"source"`
	Name      string          `json:"name"`
	Buy       decimal.Decimal `json:"buy"`
	Sell      decimal.Decimal `json:"sell"`
	Average   decimal.Decimal `json:"average"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// RateSnapshotResponse is the cached FX snapshot plus the official rate.
type RateSnapshotResponse struct {
	Quotes       []RateQuoteResponse `json:"quotes"`
	OfficialRate *decimal.Decimal    `json:"officialRate,omitempty"`
	FetchedAt    time.Time           `json:"fetchedAt"`
}

// ToRateSnapshotResponse converts a domain.RateSnapshot to a response DTO.
func ToRateSnapshotResponse(snap *domain.RateSnapshot) RateSnapshotResponse {
	quotes := make([]RateQuoteResponse, len(snap.Quotes))
	for i, q := range snap.Quotes {
		quotes[i] = RateQuoteResponse{
			Source:    q.Source,
			Name:      q.Name,
			Buy:       q.Buy,
			Sell:      q.Sell,
			Average:   q.Average,
			UpdatedAt: q.UpdatedAt,
		}
	}
	resp := RateSnapshotResponse{Quotes: quotes, FetchedAt: snap.FetchedAt}
	if official, ok := domain.OfficialRate(snap.Quotes); ok {
		resp.OfficialRate = &official
	}
	return resp
}
