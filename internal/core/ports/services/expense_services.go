package services

import (
	"context"
	"time"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ExpenseSvcFacade exposes business expense operations.
type ExpenseSvcFacade interface {
	// CreateExpense persists an expense, deriving the local amount from the
	// base amount at the current official rate.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.BusinessExpense, error)

	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.BusinessExpense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.BusinessExpense, error)
	ListExpenses(ctx context.Context, params pagination.Params) (*pagination.Result[domain.BusinessExpense], error)
	ListExpensesByPeriod(ctx context.Context, from, to time.Time, category string) ([]domain.BusinessExpense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}
