package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// saleService implements the sale workflow on top of the sale and product
// repositories. Stock sufficiency is checked twice: optimistically while the
// cart is assembled, and authoritatively inside the repository transaction.
type saleService struct {
	saleRepo      portsrepo.SaleRepositoryFacade
	productRepo   portsrepo.ProductReader
	rateService   portssvc.RateSvcFacade
	receivableSvc portssvc.ReceivableSvcFacade
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, productRepo portsrepo.ProductReader, rateService portssvc.RateSvcFacade, receivableSvc portssvc.ReceivableSvcFacade) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		rateService:   rateService,
		receivableSvc: receivableSvc,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale assembles a cart from the requested line items, reprices it at
// the current official rate and persists it atomically. The repository
// rejects the whole sale if any stock decrement would go negative.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	if creatorUserID == "" {
		return nil, fmt.Errorf("%w: sale creation requires an authenticated actor", apperrors.ErrUnauthenticated)
	}
	if len(req.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	cart := domain.Cart{}
	for _, line := range req.Items {
		product, err := s.productRepo.FindProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s does not exist", apperrors.ErrValidation, line.ProductID)
			}
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		cart, err = cart.AddItem(*product, line.Quantity)
		if err != nil {
			return nil, err
		}
	}

	rate, err := s.rateService.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}
	cart = cart.Reprice(rate)
	totalBase, totalLocal := cart.Totals()

	now := time.Now()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		ClientID:    req.ClientID,
		Items:       cart.Items,
		TotalBase:   totalBase,
		TotalLocal:  totalLocal,
		RateApplied: rate,
		Status:      domain.SalePending,
		SaleDate:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range sale.Items {
		sale.Items[i].SaleItemID = uuid.NewString()
		sale.Items[i].SaleID = sale.SaleID
	}

	if err := s.saleRepo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("total_base", totalBase.String()),
		slog.String("rate", rate.String()))
	return &sale, nil
}

// ApproveSale transitions a pending sale to completed and generates its
// receivable. The status change is the source of truth: a receivable failure
// is reported as a warning, never rolled into the completion.
func (s *saleService) ApproveSale(ctx context.Context, saleID string, updaterUserID string) (*portssvc.SaleApprovalResult, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if !sale.Status.CanTransitionTo(domain.SaleCompleted) {
		return nil, fmt.Errorf("%w: cannot approve a %s sale", apperrors.ErrValidation, sale.Status)
	}

	if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, domain.SaleCompleted, updaterUserID); err != nil {
		return nil, err
	}
	sale.Status = domain.SaleCompleted

	result := &portssvc.SaleApprovalResult{Sale: sale}
	if _, err := s.receivableSvc.CreateFromSale(ctx, sale, updaterUserID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Sale approved but receivable generation failed",
			slog.String("sale_id", saleID),
			slog.String("error", err.Error()))
		result.Warning = fmt.Sprintf("sale completed but receivable generation failed: %v", err)
	}
	return result, nil
}

// CancelSale transitions a pending sale to cancelled. Stock stays decremented
// until the sale is deleted.
func (s *saleService) CancelSale(ctx context.Context, saleID string, updaterUserID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if !sale.Status.CanTransitionTo(domain.SaleCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s sale", apperrors.ErrValidation, sale.Status)
	}
	if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, domain.SaleCancelled, updaterUserID); err != nil {
		return nil, err
	}
	sale.Status = domain.SaleCancelled
	return sale, nil
}

// DeleteSale removes a sale; the repository restores stock for every line
// item in the same transaction.
func (s *saleService) DeleteSale(ctx context.Context, saleID string) error {
	return s.saleRepo.DeleteSale(ctx, saleID)
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

func (s *saleService) ListSales(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	return s.saleRepo.ListSales(ctx, params)
}

func (s *saleService) SearchSales(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	return s.saleRepo.SearchSales(ctx, query, params)
}
