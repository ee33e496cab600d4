package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ReceivableReader defines read operations for receivables.
type ReceivableReader interface {
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// FindReceivableBySaleID retrieves the receivable generated for a sale.
	FindReceivableBySaleID(ctx context.Context, saleID string) (*domain.Receivable, error)

	ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error)

	// ListPendingReceivables retrieves open receivables ordered by due date.
	ListPendingReceivables(ctx context.Context) ([]domain.Receivable, error)
}

// ReceivableWriter defines write operations for receivables.
type ReceivableWriter interface {
	// SaveReceivable persists a new receivable. The sale link is unique, so a
	// second insert for the same sale fails with apperrors.ErrDuplicate.
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error

	// UpdateReceivable persists changed notes/due date/status fields.
	UpdateReceivable(ctx context.Context, receivable domain.Receivable) error

	// UpdatePendingAmounts rewrites the pending amounts and status after a
	// payment is applied.
	UpdatePendingAmounts(ctx context.Context, receivableID string, pendingBase, pendingLocal decimal.Decimal, status domain.ReceivableStatus, updatedBy string) error

	DeleteReceivable(ctx context.Context, receivableID string) error
}

// ReceivableRepositoryFacade combines all receivable repository interfaces.
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}
