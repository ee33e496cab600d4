package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// AuditSvcFacade exposes read access over the audit trail.
type AuditSvcFacade interface {
	ListEntries(ctx context.Context, tableName string, operation string, params pagination.Params) (*pagination.Result[domain.AuditEntry], error)
}
