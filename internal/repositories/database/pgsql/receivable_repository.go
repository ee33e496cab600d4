package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

const receivableColumns = `receivable_id, sale_id, pending_amount_base, pending_amount_local, due_date, status, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxReceivableRepository struct {
	BaseRepository
}

// NewReceivableRepository creates a new repository for collection data.
func NewReceivableRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{
		BaseRepository: BaseRepository{Pool: pool, Audit: audit},
	}
}

var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

func scanReceivable(row pgx.Row) (*domain.Receivable, error) {
	var rec domain.Receivable
	err := row.Scan(
		&rec.ReceivableID,
		&rec.SaleID,
		&rec.PendingAmountBase,
		&rec.PendingAmountLocal,
		&rec.DueDate,
		&rec.Status,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastUpdatedAt,
		&rec.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectReceivables(rows pgx.Rows) ([]domain.Receivable, error) {
	defer rows.Close()
	var receivables []domain.Receivable
	for rows.Next() {
		rec, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		receivables = append(receivables, *rec)
	}
	return receivables, rows.Err()
}

// SaveReceivable persists a new receivable. The sale_id column carries a
// unique constraint, so generating a second receivable for the same sale
// fails with apperrors.ErrDuplicate.
func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	start := time.Now()
	query := `
		INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		receivable.ReceivableID,
		receivable.SaleID,
		receivable.PendingAmountBase,
		receivable.PendingAmountLocal,
		receivable.DueDate,
		receivable.Status,
		receivable.Notes,
		receivable.CreatedAt,
		receivable.CreatedBy,
		receivable.LastUpdatedAt,
		receivable.LastUpdatedBy,
	)
	err = classifyError(err, "failed to save receivable for sale "+receivable.SaleID)
	r.audit(ctx, domain.LogCritical, "receivables", domain.OpInsert, []string{receivable.ReceivableID}, "SaveReceivable", start, err)
	return err
}

// UpdateReceivable persists changed due date, notes and status fields.
func (r *PgxReceivableRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) error {
	start := time.Now()
	query := `
		UPDATE receivables
		SET due_date = $2, status = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE receivable_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		receivable.ReceivableID,
		receivable.DueDate,
		receivable.Status,
		receivable.Notes,
		receivable.LastUpdatedAt,
		receivable.LastUpdatedBy,
	)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update receivable "+receivable.ReceivableID)
	r.audit(ctx, domain.LogCritical, "receivables", domain.OpUpdate, []string{receivable.ReceivableID}, "UpdateReceivable", start, err)
	return err
}

// UpdatePendingAmounts rewrites the pending amounts and status after a
// payment is applied.
func (r *PgxReceivableRepository) UpdatePendingAmounts(ctx context.Context, receivableID string, pendingBase, pendingLocal decimal.Decimal, status domain.ReceivableStatus, updatedBy string) error {
	start := time.Now()
	query := `
		UPDATE receivables
		SET pending_amount_base = $2, pending_amount_local = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE receivable_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, receivableID, pendingBase, pendingLocal, status, time.Now(), updatedBy)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update pending amounts of receivable "+receivableID)
	r.audit(ctx, domain.LogCritical, "receivables", domain.OpUpdate, []string{receivableID}, "UpdatePendingAmounts", start, err)
	return err
}

// DeleteReceivable removes a receivable.
func (r *PgxReceivableRepository) DeleteReceivable(ctx context.Context, receivableID string) error {
	start := time.Now()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM receivables WHERE receivable_id = $1;`, receivableID)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to delete receivable "+receivableID)
	r.audit(ctx, domain.LogCritical, "receivables", domain.OpDelete, []string{receivableID}, "DeleteReceivable", start, err)
	return err
}

// FindReceivableByID retrieves a single receivable.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE receivable_id = $1;`
	rec, err := scanReceivable(r.Pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		return nil, classifyError(err, "receivable "+receivableID)
	}
	return rec, nil
}

// FindReceivableBySaleID retrieves the receivable generated for a sale.
func (r *PgxReceivableRepository) FindReceivableBySaleID(ctx context.Context, saleID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE sale_id = $1;`
	rec, err := scanReceivable(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		return nil, classifyError(err, "receivable for sale "+saleID)
	}
	return rec, nil
}

// ListReceivables retrieves one page of receivables.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error) {
	params, err := params.Normalize("created_at", "created_at", "due_date", "pending_amount_base", "status")
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + receivableColumns + ` FROM receivables ` + params.OrderClause() + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list receivables")
	}
	receivables, err := collectReceivables(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan receivables")
	}

	total, err := r.countRows(ctx, params.CountStrategy, "receivables", "")
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Receivable]{Data: receivables, TotalCount: total}, nil
}

// ListPendingReceivables retrieves open receivables ordered by due date.
func (r *PgxReceivableRepository) ListPendingReceivables(ctx context.Context) ([]domain.Receivable, error) {
	query := `
		SELECT ` + receivableColumns + `
		FROM receivables
		WHERE status IN ($1, $2, $3)
		ORDER BY due_date ASC NULLS LAST;
	`
	rows, err := r.Pool.Query(ctx, query, domain.ReceivablePending, domain.ReceivablePartial, domain.ReceivableOverdue)
	if err != nil {
		return nil, classifyError(err, "failed to list pending receivables")
	}
	receivables, err := collectReceivables(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan receivables")
	}
	return receivables, nil
}
