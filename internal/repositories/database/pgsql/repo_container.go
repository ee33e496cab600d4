package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against the shared pool.
// The audit repository is constructed first so the others can record through it.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	auditRepo := NewAuditLogRepository(pool)
	return &portsrepo.RepositoryProvider{
		ProductRepo:    NewProductRepository(pool, auditRepo),
		SaleRepo:       NewSaleRepository(pool, auditRepo),
		ReceivableRepo: NewReceivableRepository(pool, auditRepo),
		ClientRepo:     NewClientRepository(pool, auditRepo),
		ExpenseRepo:    NewExpenseRepository(pool, auditRepo),
		AuditRepo:      auditRepo,
		UserRepo:       NewUserRepository(pool, auditRepo),
	}
}
