package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ReceivableSvcFacade exposes collection (cobranza) operations.
type ReceivableSvcFacade interface {
	// CreateFromSale generates the receivable mirroring a completed sale's
	// totals. At most one receivable exists per sale.
	CreateFromSale(ctx context.Context, sale *domain.Sale, creatorUserID string) (*domain.Receivable, error)

	GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error)
	ListPending(ctx context.Context) ([]domain.Receivable, error)

	UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, updaterUserID string) (*domain.Receivable, error)

	// RegisterPayment decreases the pending amount. The pending amount never
	// increases; reaching zero forces the status to paid.
	RegisterPayment(ctx context.Context, receivableID string, amountBase decimal.Decimal, updaterUserID string) (*domain.Receivable, error)

	// MarkPaid zeroes the pending amounts and sets the status to paid.
	MarkPaid(ctx context.Context, receivableID string, updaterUserID string) (*domain.Receivable, error)

	DeleteReceivable(ctx context.Context, receivableID string) error
}
