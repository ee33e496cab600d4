package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// UpdateReceivableRequest defines the updatable receivable fields. Pending
// amounts are never edited directly; payments go through RegisterPayment.
type UpdateReceivableRequest struct {
	DueDate *time.Time `json:"dueDate,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// RegisterPaymentRequest defines a payment applied to a receivable.
type RegisterPaymentRequest struct {
	AmountBase decimal.Decimal `json:"amountBase" binding:"required"`
}

// ReceivableResponse defines the data returned for a receivable.
type ReceivableResponse struct {
	ReceivableID       string                  `json:"receivableID"`
	SaleID             string                  `json:"saleID"`
	PendingAmountBase  decimal.Decimal         `json:"pendingAmountBase"`
	PendingAmountLocal decimal.Decimal         `json:"pendingAmountLocal"`
	DueDate            *time.Time              `json:"dueDate,omitempty"`
	Status             domain.ReceivableStatus `json:"status"`
	Notes              string                  `json:"notes,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	LastUpdatedAt      time.Time               `json:"lastUpdatedAt"`
}

// ToReceivableResponse converts a domain.Receivable to a response DTO.
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ReceivableID:       r.ReceivableID,
		SaleID:             r.SaleID,
		PendingAmountBase:  r.PendingAmountBase,
		PendingAmountLocal: r.PendingAmountLocal,
		DueDate:            r.DueDate,
		Status:             r.Status,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		LastUpdatedAt:      r.LastUpdatedAt,
	}
}

// ToListReceivableResponse converts a slice of domain.Receivable to DTOs.
func ToListReceivableResponse(receivables []domain.Receivable) []ReceivableResponse {
	res := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		res[i] = ToReceivableResponse(&receivables[i])
	}
	return res
}
