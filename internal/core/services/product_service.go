package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/currency"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// productService implements inventory operations. Local prices are always
// derived server-side from the base price at the current official rate.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	rateService portssvc.RateSvcFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, rateService portssvc.RateSvcFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, rateService: rateService}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	rate, err := s.rateService.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := domain.Product{
		ProductID:      uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		UnitPriceBase:  req.UnitPriceBase,
		UnitPriceLocal: currency.ToLocal(req.UnitPriceBase, rate),
		Stock:          req.Stock,
		Weight:         req.Weight,
		Category:       req.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies the non-nil request fields. A base-price change
// recomputes the local price at the current rate; other edits leave both
// prices untouched.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Weight != nil {
		product.Weight = req.Weight
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.UnitPriceBase != nil && !req.UnitPriceBase.Equal(product.UnitPriceBase) {
		rate, err := s.rateService.CurrentRate(ctx)
		if err != nil {
			return nil, err
		}
		product.UnitPriceBase = *req.UnitPriceBase
		product.UnitPriceLocal = currency.ToLocal(*req.UnitPriceBase, rate)
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error) {
	return s.productRepo.ListProducts(ctx, params)
}

func (s *productService) SearchProducts(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Product], error) {
	return s.productRepo.SearchProducts(ctx, query, params)
}

func (s *productService) ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	products, err := s.productRepo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.DeleteProduct(ctx, productID)
}
