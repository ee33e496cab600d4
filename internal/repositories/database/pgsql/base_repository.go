package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. Declared as an
// interface so tests can substitute a mock connection for the pool.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories: the
// connection pool, transaction control, structured error classification and
// the best-effort audit hook.
type BaseRepository struct {
	Pool  PgxPool
	Audit portsrepo.AuditLogWriter
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// classifyError maps pgx errors onto the apperrors taxonomy using SQLSTATE
// codes. String matching on driver messages is deliberately avoided.
func classifyError(err error, context string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, context)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, context)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s references a missing row", apperrors.ErrValidation, context)
		case "23514": // check_violation
			return fmt.Errorf("%w: %s violates a data constraint", apperrors.ErrValidation, context)
		}
	}
	return apperrors.NewAppError(500, context, err)
}

// audit records the outcome of a data-access call according to the log level.
// Audit writes never propagate failures; the sink itself swallows errors.
func (r *BaseRepository) audit(ctx context.Context, level domain.AuditLogLevel, table string, op domain.AuditOperation, recordIDs []string, queryText string, start time.Time, opErr error) {
	if r.Audit == nil || level == domain.LogNone {
		return
	}
	if opErr != nil && !level.RecordsFailure() {
		return
	}
	if opErr == nil && !level.RecordsSuccess() {
		return
	}

	entry := domain.AuditEntry{
		Timestamp: time.Now(),
		TableName: table,
		Operation: op,
		RecordIDs: recordIDs,
		QueryText: queryText,
	}
	if userID, ok := middleware.GetUserIDFromCtx(ctx); ok {
		entry.UserID = userID
	}
	if !start.IsZero() {
		durationMS := time.Since(start).Milliseconds()
		entry.DurationMS = &durationMS
	}
	if opErr != nil {
		entry.Operation = domain.OpError
		entry.ErrorMessage = opErr.Error()
		entry.QueryText = string(op) + " " + queryText
	}
	r.Audit.Append(ctx, entry)
}

// countRows computes the page total according to the count strategy. Exact
// counts scan the filtered set; estimated counts read planner statistics for
// the whole table (good enough for pagers, cheap on large tables); none skips
// the round trip and reports zero.
func (r *BaseRepository) countRows(ctx context.Context, strategy pagination.CountStrategy, table string, filterClause string, args ...any) (int64, error) {
	switch strategy {
	case pagination.CountNone:
		return 0, nil
	case pagination.CountEstimated:
		var estimate int64
		query := `SELECT COALESCE(reltuples::bigint, 0) FROM pg_class WHERE relname = $1;`
		if err := r.Pool.QueryRow(ctx, query, table).Scan(&estimate); err != nil {
			// Planner statistics are advisory; fall back to zero rather than
			// failing the listing.
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to read row estimate",
				slog.String("table", table), slog.String("error", err.Error()))
			return 0, nil
		}
		if estimate < 0 {
			estimate = 0
		}
		return estimate, nil
	default:
		query := "SELECT COUNT(*) FROM " + table
		if filterClause != "" {
			query += " WHERE " + filterClause
		}
		var count int64
		if err := r.Pool.QueryRow(ctx, query+";", args...).Scan(&count); err != nil {
			return 0, classifyError(err, "failed to count rows in "+table)
		}
		return count, nil
	}
}
