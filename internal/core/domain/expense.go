package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessExpense is an outgoing payment recorded in both currencies at the
// rate in effect when it was registered.
type BusinessExpense struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	AmountBase  decimal.Decimal `json:"amountBase"`
	AmountLocal decimal.Decimal `json:"amountLocal"`
	RateApplied decimal.Decimal `json:"rateApplied"`
	ExpenseDate time.Time       `json:"expenseDate"`
	ReceiptURL  string          `json:"receiptURL,omitempty"`
	AuditFields
}
