package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

const expenseColumns = `expense_id, description, category, amount_base, amount_local, rate_applied, expense_date, receipt_url, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// NewExpenseRepository creates a new repository for business expenses.
func NewExpenseRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool, Audit: audit},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*domain.BusinessExpense, error) {
	var e domain.BusinessExpense
	err := row.Scan(
		&e.ExpenseID,
		&e.Description,
		&e.Category,
		&e.AmountBase,
		&e.AmountLocal,
		&e.RateApplied,
		&e.ExpenseDate,
		&e.ReceiptURL,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectExpenses(rows pgx.Rows) ([]domain.BusinessExpense, error) {
	defer rows.Close()
	var expenses []domain.BusinessExpense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.BusinessExpense) error {
	start := time.Now()
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.Description,
		expense.Category,
		expense.AmountBase,
		expense.AmountLocal,
		expense.RateApplied,
		expense.ExpenseDate,
		expense.ReceiptURL,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	err = classifyError(err, "failed to save expense "+expense.ExpenseID)
	r.audit(ctx, domain.LogCritical, "expenses", domain.OpInsert, []string{expense.ExpenseID}, "SaveExpense", start, err)
	return err
}

// UpdateExpense persists changed descriptive fields. Amounts and the applied
// rate are immutable after creation.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.BusinessExpense) error {
	start := time.Now()
	query := `
		UPDATE expenses
		SET description = $2, category = $3, expense_date = $4, receipt_url = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.Description,
		expense.Category,
		expense.ExpenseDate,
		expense.ReceiptURL,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update expense "+expense.ExpenseID)
	r.audit(ctx, domain.LogCritical, "expenses", domain.OpUpdate, []string{expense.ExpenseID}, "UpdateExpense", start, err)
	return err
}

// DeleteExpense removes an expense.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	start := time.Now()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to delete expense "+expenseID)
	r.audit(ctx, domain.LogCritical, "expenses", domain.OpDelete, []string{expenseID}, "DeleteExpense", start, err)
	return err
}

// FindExpenseByID retrieves a single expense.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.BusinessExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	e, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, classifyError(err, "expense "+expenseID)
	}
	return e, nil
}

// ListExpenses retrieves one page of expenses.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, params pagination.Params) (*pagination.Result[domain.BusinessExpense], error) {
	params, err := params.Normalize("expense_date", "expense_date", "created_at", "amount_base", "category")
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses ` + params.OrderClause() + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list expenses")
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan expenses")
	}

	total, err := r.countRows(ctx, params.CountStrategy, "expenses", "")
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.BusinessExpense]{Data: expenses, TotalCount: total}, nil
}

// ListExpensesByPeriod retrieves expenses within [from, to), optionally
// filtered by category.
func (r *PgxExpenseRepository) ListExpensesByPeriod(ctx context.Context, from, to time.Time, category string) ([]domain.BusinessExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_date >= $1 AND expense_date < $2`
	args := []any{from, to}
	if category != "" {
		query += ` AND category = $3`
		args = append(args, category)
	}
	query += ` ORDER BY expense_date DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err, "failed to list expenses by period")
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan expenses")
	}
	return expenses, nil
}
