package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus indicates the collection state of a receivable.
type ReceivableStatus string

const (
	ReceivablePending ReceivableStatus = "pending"
	ReceivablePartial ReceivableStatus = "partial"
	ReceivablePaid    ReceivableStatus = "paid"
	ReceivableOverdue ReceivableStatus = "overdue"
)

// Receivable records money owed from an approved sale. The pending amount only
// decreases; reaching zero forces the status to paid. Exactly one receivable
// is created per completed sale. The overdue status is derived from the due
// date by the read paths rather than written by a sweep.
type Receivable struct {
	ReceivableID       string           `json:"receivableID"`
	SaleID             string           `json:"saleID"`
	PendingAmountBase  decimal.Decimal  `json:"pendingAmountBase"`
	PendingAmountLocal decimal.Decimal  `json:"pendingAmountLocal"`
	DueDate            *time.Time       `json:"dueDate,omitempty"`
	Status             ReceivableStatus `json:"status"`
	Notes              string           `json:"notes,omitempty"`
	AuditFields
}

// IsOverdue reports whether the receivable is past its due date and still
// carries a pending amount. Paid receivables are never overdue, and a
// receivable without a due date cannot become overdue.
func (r Receivable) IsOverdue(now time.Time) bool {
	if r.Status != ReceivablePending && r.Status != ReceivablePartial {
		return false
	}
	return r.DueDate != nil && r.DueDate.Before(now)
}

// WithDerivedStatus returns the receivable with its status replaced by
// overdue when the due date has passed. The stored status is left untouched.
func (r Receivable) WithDerivedStatus(now time.Time) Receivable {
	if r.IsOverdue(now) {
		r.Status = ReceivableOverdue
	}
	return r
}
