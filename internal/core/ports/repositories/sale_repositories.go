package repositories

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// SaleReader defines read operations for sales data.
type SaleReader interface {
	// FindSaleByID retrieves a sale with its line items and client name.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves one page of sales (headers only, client name joined).
	ListSales(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Sale], error)

	// SearchSales retrieves one page of sales matching the query.
	SearchSales(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Sale], error)
}

// SaleWriter defines write operations for sales data.
type SaleWriter interface {
	// CreateSale persists the sale header, its line items and the stock
	// decrements as one atomic unit. If any product's stock cannot cover its
	// quantity, or any write fails, nothing is persisted and the error names
	// the cause (apperrors.InsufficientStockError for shortfalls).
	CreateSale(ctx context.Context, sale domain.Sale) error

	// UpdateSaleStatus transitions the sale's status.
	UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string) error

	// DeleteSale restores stock for every line item, then removes items and
	// header, as one atomic unit.
	DeleteSale(ctx context.Context, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction control.
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
