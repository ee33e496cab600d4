package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

type auditService struct {
	auditRepo portsrepo.AuditLogReader
}

// NewAuditService creates a new audit trail read service.
func NewAuditService(auditRepo portsrepo.AuditLogReader) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) ListEntries(ctx context.Context, tableName string, operation string, params pagination.Params) (*pagination.Result[domain.AuditEntry], error) {
	return s.auditRepo.ListEntries(ctx, tableName, operation, params)
}
