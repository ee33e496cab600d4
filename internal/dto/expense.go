package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to register an expense. The
// local amount is derived server-side at the current official rate.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	AmountBase  decimal.Decimal `json:"amountBase" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate"`
	ReceiptURL  string          `json:"receiptURL"`
}

// UpdateExpenseRequest defines the updatable expense fields. Amounts are not
// editable after creation; the recorded rate must stay consistent with them.
type UpdateExpenseRequest struct {
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	ExpenseDate *time.Time `json:"expenseDate,omitempty"`
	ReceiptURL  *string    `json:"receiptURL,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	AmountBase    decimal.Decimal `json:"amountBase"`
	AmountLocal   decimal.Decimal `json:"amountLocal"`
	RateApplied   decimal.Decimal `json:"rateApplied"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	ReceiptURL    string          `json:"receiptURL,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.BusinessExpense to a response DTO.
func ToExpenseResponse(e *domain.BusinessExpense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Description:   e.Description,
		Category:      e.Category,
		AmountBase:    e.AmountBase,
		AmountLocal:   e.AmountLocal,
		RateApplied:   e.RateApplied,
		ExpenseDate:   e.ExpenseDate,
		ReceiptURL:    e.ReceiptURL,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.BusinessExpense to DTOs.
func ToListExpenseResponse(expenses []domain.BusinessExpense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
