package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// SaleApprovalResult is the outcome of approving a sale. Warning is non-empty
// when the sale itself completed but receivable generation failed; callers
// must check it even on success.
type SaleApprovalResult struct {
	Sale    *domain.Sale
	Warning string
}

// SaleSvcFacade exposes the sale workflow operations.
type SaleSvcFacade interface {
	// CreateSale validates and persists a sale from a cart of line items,
	// repricing at the current official rate and decrementing stock
	// atomically. On any failure nothing is persisted.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)

	// ApproveSale transitions pending -> completed and generates the
	// receivable. Receivable failure does not undo the completion.
	ApproveSale(ctx context.Context, saleID string, updaterUserID string) (*SaleApprovalResult, error)

	// CancelSale transitions pending -> cancelled.
	CancelSale(ctx context.Context, saleID string, updaterUserID string) (*domain.Sale, error)

	// DeleteSale removes a sale, restoring stock for every line item.
	DeleteSale(ctx context.Context, saleID string) error

	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Sale], error)
	SearchSales(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Sale], error)
}
