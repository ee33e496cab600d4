package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

type receivableService struct {
	receivableRepo portsrepo.ReceivableRepositoryFacade
}

// NewReceivableService creates a new receivable service.
func NewReceivableService(receivableRepo portsrepo.ReceivableRepositoryFacade) portssvc.ReceivableSvcFacade {
	return &receivableService{receivableRepo: receivableRepo}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// CreateFromSale generates the receivable mirroring the sale's totals. The
// sale link is unique at the database level, so approving twice surfaces
// apperrors.ErrDuplicate rather than a second receivable.
func (s *receivableService) CreateFromSale(ctx context.Context, sale *domain.Sale, creatorUserID string) (*domain.Receivable, error) {
	if sale == nil || sale.SaleID == "" {
		return nil, fmt.Errorf("%w: receivable requires a persisted sale", apperrors.ErrValidation)
	}

	now := time.Now()
	receivable := domain.Receivable{
		ReceivableID:       uuid.NewString(),
		SaleID:             sale.SaleID,
		PendingAmountBase:  sale.TotalBase,
		PendingAmountLocal: sale.TotalLocal,
		Status:             domain.ReceivablePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.receivableRepo.SaveReceivable(ctx, receivable); err != nil {
		return nil, err
	}
	return &receivable, nil
}

func (s *receivableService) GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	derived := receivable.WithDerivedStatus(time.Now())
	return &derived, nil
}

func (s *receivableService) ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error) {
	result, err := s.receivableRepo.ListReceivables(ctx, params)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range result.Data {
		result.Data[i] = result.Data[i].WithDerivedStatus(now)
	}
	return result, nil
}

func (s *receivableService) ListPending(ctx context.Context) ([]domain.Receivable, error) {
	receivables, err := s.receivableRepo.ListPendingReceivables(ctx)
	if err != nil {
		return nil, err
	}
	if receivables == nil {
		return []domain.Receivable{}, nil
	}
	now := time.Now()
	for i := range receivables {
		receivables[i] = receivables[i].WithDerivedStatus(now)
	}
	return receivables, nil
}

// UpdateReceivable applies due date and note edits. Pending amounts are not
// editable here; they only move through RegisterPayment and MarkPaid.
func (s *receivableService) UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, updaterUserID string) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if req.DueDate != nil {
		receivable.DueDate = req.DueDate
	}
	if req.Notes != nil {
		receivable.Notes = *req.Notes
	}
	receivable.LastUpdatedAt = time.Now()
	receivable.LastUpdatedBy = updaterUserID

	if err := s.receivableRepo.UpdateReceivable(ctx, *receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}

// RegisterPayment applies a base-currency payment. The local pending amount
// shrinks proportionally so both balances always reflect the same share of
// the original debt. Overpayment is rejected, not clamped.
func (s *receivableService) RegisterPayment(ctx context.Context, receivableID string, amountBase decimal.Decimal, updaterUserID string) (*domain.Receivable, error) {
	if !amountBase.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if receivable.Status == domain.ReceivablePaid {
		return nil, fmt.Errorf("%w: receivable %s is already paid", apperrors.ErrValidation, receivableID)
	}
	if amountBase.GreaterThan(receivable.PendingAmountBase) {
		return nil, fmt.Errorf("%w: payment %s exceeds pending amount %s",
			apperrors.ErrValidation, amountBase, receivable.PendingAmountBase)
	}

	newBase := receivable.PendingAmountBase.Sub(amountBase)
	var newLocal decimal.Decimal
	if newBase.IsZero() {
		newLocal = decimal.Zero
	} else {
		// Scale the local balance by the remaining share of the base balance.
		newLocal = receivable.PendingAmountLocal.
			Mul(newBase).
			Div(receivable.PendingAmountBase)
	}

	status := domain.ReceivablePartial
	if newBase.IsZero() {
		status = domain.ReceivablePaid
	}

	if err := s.receivableRepo.UpdatePendingAmounts(ctx, receivableID, newBase, newLocal, status, updaterUserID); err != nil {
		return nil, err
	}

	receivable.PendingAmountBase = newBase
	receivable.PendingAmountLocal = newLocal
	receivable.Status = status
	receivable.LastUpdatedBy = updaterUserID
	return receivable, nil
}

// MarkPaid zeroes both pending amounts and sets the status to paid.
func (s *receivableService) MarkPaid(ctx context.Context, receivableID string, updaterUserID string) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if err := s.receivableRepo.UpdatePendingAmounts(ctx, receivableID, decimal.Zero, decimal.Zero, domain.ReceivablePaid, updaterUserID); err != nil {
		return nil, err
	}
	receivable.PendingAmountBase = decimal.Zero
	receivable.PendingAmountLocal = decimal.Zero
	receivable.Status = domain.ReceivablePaid
	receivable.LastUpdatedBy = updaterUserID
	return receivable, nil
}

func (s *receivableService) DeleteReceivable(ctx context.Context, receivableID string) error {
	return s.receivableRepo.DeleteReceivable(ctx, receivableID)
}
