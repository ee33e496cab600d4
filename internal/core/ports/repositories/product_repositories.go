package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ProductReader defines read operations for inventory data.
type ProductReader interface {
	// FindProductByID retrieves a single product.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves one page of products.
	ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error)

	// SearchProducts retrieves one page of products matching the query by
	// name, description or category.
	SearchProducts(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Product], error)

	// ListLowStock retrieves products at or below the stock threshold.
	ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error)
}

// ProductWriter defines write operations for inventory data.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct persists changed product fields.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// UpdatePrices rewrites both unit prices; used when the base price changes
	// and the local price is recomputed at the current rate.
	UpdatePrices(ctx context.Context, productID string, priceBase, priceLocal decimal.Decimal, updatedBy string) error

	// DeleteProduct removes a product from the registry.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
