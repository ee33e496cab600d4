package services

import (
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The rate service is built first since every
// financial write depends on it; the sale service is built after the
// receivable service because approval triggers receivable generation.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, rateService portssvc.RateSvcFacade) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = rateService
	container.Receivable = NewReceivableService(repos.ReceivableRepo)
	container.Sale = NewSaleService(repos.SaleRepo, repos.ProductRepo, rateService, container.Receivable)
	container.Product = NewProductService(repos.ProductRepo, rateService)
	container.Client = NewClientService(repos.ClientRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, rateService)
	container.Audit = NewAuditService(repos.AuditRepo)
	container.Auth = NewAuthService(repos.UserRepo, repos.AuditRepo, cfg)

	return container
}
