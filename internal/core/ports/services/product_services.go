package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ProductSvcFacade exposes inventory operations.
type ProductSvcFacade interface {
	// CreateProduct persists a product, deriving the local price from the base
	// price at the current official rate.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct persists changes; a base-price change recomputes the local
	// price at the current rate.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)

	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error)
	SearchProducts(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Product], error)
	ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}
