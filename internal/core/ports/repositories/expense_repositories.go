package repositories

import (
	"context"
	"time"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ExpenseReader defines read operations for business expenses.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.BusinessExpense, error)
	ListExpenses(ctx context.Context, params pagination.Params) (*pagination.Result[domain.BusinessExpense], error)

	// ListExpensesByPeriod retrieves expenses within [from, to), optionally
	// filtered by category (empty string means all categories).
	ListExpensesByPeriod(ctx context.Context, from, to time.Time, category string) ([]domain.BusinessExpense, error)
}

// ExpenseWriter defines write operations for business expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.BusinessExpense) error
	UpdateExpense(ctx context.Context, expense domain.BusinessExpense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
