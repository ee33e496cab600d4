package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// SaleItemRequest is one cart line in a create-sale request.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest defines the data needed to create a sale.
type CreateSaleRequest struct {
	ClientID *string           `json:"clientID,omitempty"`
	Items    []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse is one persisted sale line.
type SaleItemResponse struct {
	SaleItemID     string          `json:"saleItemID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"`
	UnitPriceBase  decimal.Decimal `json:"unitPriceBase"`
	UnitPriceLocal decimal.Decimal `json:"unitPriceLocal"`
	SubtotalBase   decimal.Decimal `json:"subtotalBase"`
	SubtotalLocal  decimal.Decimal `json:"subtotalLocal"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID      string             `json:"saleID"`
	ClientID    *string            `json:"clientID,omitempty"`
	ClientName  string             `json:"clientName,omitempty"`
	Items       []SaleItemResponse `json:"items,omitempty"`
	TotalBase   decimal.Decimal    `json:"totalBase"`
	TotalLocal  decimal.Decimal    `json:"totalLocal"`
	RateApplied decimal.Decimal    `json:"rateApplied"`
	Status      domain.SaleStatus  `json:"status"`
	SaleDate    time.Time          `json:"saleDate"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
	Warning     string             `json:"warning,omitempty"`
}

// ToSaleResponse converts a domain.Sale to a SaleResponse DTO.
func ToSaleResponse(sale *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			SaleItemID:     item.SaleItemID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceBase:  item.UnitPriceBase,
			UnitPriceLocal: item.UnitPriceLocal,
			SubtotalBase:   item.SubtotalBase,
			SubtotalLocal:  item.SubtotalLocal,
		}
	}
	return SaleResponse{
		SaleID:      sale.SaleID,
		ClientID:    sale.ClientID,
		ClientName:  sale.ClientName,
		Items:       items,
		TotalBase:   sale.TotalBase,
		TotalLocal:  sale.TotalLocal,
		RateApplied: sale.RateApplied,
		Status:      sale.Status,
		SaleDate:    sale.SaleDate,
		CreatedAt:   sale.CreatedAt,
		CreatedBy:   sale.CreatedBy,
	}
}

// ToListSaleResponse converts a slice of domain.Sale to response DTOs.
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
