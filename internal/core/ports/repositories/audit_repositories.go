package repositories

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// AuditLogWriter appends entries to the audit trail. Implementations must be
// best-effort: failures are logged and swallowed, never propagated to the
// operation being audited.
type AuditLogWriter interface {
	Append(ctx context.Context, entry domain.AuditEntry)
}

// AuditLogReader defines read operations over the audit trail.
type AuditLogReader interface {
	ListEntries(ctx context.Context, tableName string, operation string, params pagination.Params) (*pagination.Result[domain.AuditEntry], error)
}

// AuditLogRepositoryFacade combines the audit trail interfaces.
type AuditLogRepositoryFacade interface {
	AuditLogWriter
	AuditLogReader
}
