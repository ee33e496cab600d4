package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// CreateProductRequest defines the data needed to register a product. The
// local-currency price is derived server-side; clients only send the base
// price.
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	UnitPriceBase decimal.Decimal  `json:"unitPriceBase" binding:"required"`
	Stock         int64            `json:"stock" binding:"gte=0"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Category      string           `json:"category"`
}

// UpdateProductRequest defines the updatable product fields. Nil pointers
// leave the field unchanged.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitPriceBase *decimal.Decimal `json:"unitPriceBase,omitempty"`
	Stock         *int64           `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Category      *string          `json:"category,omitempty"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string           `json:"productID"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	UnitPriceBase  decimal.Decimal  `json:"unitPriceBase"`
	UnitPriceLocal decimal.Decimal  `json:"unitPriceLocal"`
	Stock          int64            `json:"stock"`
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Category       string           `json:"category,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to a ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Description:    p.Description,
		UnitPriceBase:  p.UnitPriceBase,
		UnitPriceLocal: p.UnitPriceLocal,
		Stock:          p.Stock,
		Weight:         p.Weight,
		Category:       p.Category,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to response DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
