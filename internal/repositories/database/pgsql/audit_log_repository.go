package pgsql

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

type PgxAuditLogRepository struct {
	Pool PgxPool
}

// NewAuditLogRepository creates the append-only audit trail repository.
func NewAuditLogRepository(pool PgxPool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{Pool: pool}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// Append writes one audit entry. Audit is best-effort and never transactional
// with the data write it describes: failures are logged and swallowed so they
// cannot fail or mask the originating operation.
func (r *PgxAuditLogRepository) Append(ctx context.Context, entry domain.AuditEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	var userID *string
	if entry.UserID != "" {
		userID = &entry.UserID
	}

	query := `
		INSERT INTO audit_logs (entry_id, ts, user_id, table_name, operation, record_ids, query_text, error_message, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Timestamp,
		userID,
		entry.TableName,
		entry.Operation,
		entry.RecordIDs,
		entry.QueryText,
		entry.ErrorMessage,
		entry.DurationMS,
	)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to append audit entry",
			slog.String("table", entry.TableName),
			slog.String("operation", string(entry.Operation)),
			slog.String("error", err.Error()))
	}
}

// ListEntries retrieves one page of audit entries, optionally filtered by
// table and operation.
func (r *PgxAuditLogRepository) ListEntries(ctx context.Context, tableName string, operation string, params pagination.Params) (*pagination.Result[domain.AuditEntry], error) {
	params, err := params.Normalize("ts", "ts", "table_name", "operation")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT entry_id, ts, COALESCE(user_id::text, ''), table_name, operation, record_ids, query_text, error_message, duration_ms
		FROM audit_logs
		WHERE ($1 = '' OR table_name = $1) AND ($2 = '' OR operation = $2)
		` + params.OrderClause() + ` LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, tableName, operation, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list audit entries")
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		err := rows.Scan(
			&e.EntryID,
			&e.Timestamp,
			&e.UserID,
			&e.TableName,
			&e.Operation,
			&e.RecordIDs,
			&e.QueryText,
			&e.ErrorMessage,
			&e.DurationMS,
		)
		if err != nil {
			return nil, classifyError(err, "failed to scan audit entries")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "failed to read audit entries")
	}

	var total int64
	if params.CountStrategy != pagination.CountNone {
		countQuery := `
			SELECT COUNT(*) FROM audit_logs
			WHERE ($1 = '' OR table_name = $1) AND ($2 = '' OR operation = $2);
		`
		if err := r.Pool.QueryRow(ctx, countQuery, tableName, operation).Scan(&total); err != nil {
			return nil, classifyError(err, "failed to count audit entries")
		}
	}
	return &pagination.Result[domain.AuditEntry]{Data: entries, TotalCount: total}, nil
}
