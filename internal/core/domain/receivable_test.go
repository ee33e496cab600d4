package domain_test

import (
	"testing"
	"time"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestReceivable_IsOverdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		receivable domain.Receivable
		want       bool
	}{
		{
			name:       "pending past due",
			receivable: domain.Receivable{Status: domain.ReceivablePending, DueDate: timePtr(now.Add(-time.Hour))},
			want:       true,
		},
		{
			name:       "partial past due",
			receivable: domain.Receivable{Status: domain.ReceivablePartial, DueDate: timePtr(now.Add(-time.Hour))},
			want:       true,
		},
		{
			name:       "pending not yet due",
			receivable: domain.Receivable{Status: domain.ReceivablePending, DueDate: timePtr(now.Add(time.Hour))},
			want:       false,
		},
		{
			name:       "pending without due date",
			receivable: domain.Receivable{Status: domain.ReceivablePending},
			want:       false,
		},
		{
			name:       "paid past due",
			receivable: domain.Receivable{Status: domain.ReceivablePaid, DueDate: timePtr(now.Add(-time.Hour))},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.receivable.IsOverdue(now))
		})
	}
}

func TestReceivable_WithDerivedStatus(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	pastDue := now.Add(-time.Hour)

	overdue := domain.Receivable{Status: domain.ReceivablePartial, DueDate: &pastDue}.WithDerivedStatus(now)
	assert.Equal(t, domain.ReceivableOverdue, overdue.Status)

	current := domain.Receivable{Status: domain.ReceivablePaid, DueDate: &pastDue}.WithDerivedStatus(now)
	assert.Equal(t, domain.ReceivablePaid, current.Status)
}
