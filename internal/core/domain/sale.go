package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
)

// SaleStatus indicates the state of a persisted sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// CanTransitionTo reports whether a status change is allowed. Only
// pending -> completed and pending -> cancelled are valid.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	return s == SalePending && (next == SaleCompleted || next == SaleCancelled)
}

// SaleItem is one line of a sale: a quantity of a product with unit prices and
// subtotals captured in both currencies. Line items are owned by their sale
// and have no independent lifecycle.
type SaleItem struct {
	SaleItemID     string          `json:"saleItemID"`
	SaleID         string          `json:"saleID"`
	ProductID      string          `json:"productID"`
	Quantity       int64           `json:"quantity"`
	UnitPriceBase  decimal.Decimal `json:"unitPriceBase"`
	UnitPriceLocal decimal.Decimal `json:"unitPriceLocal"`
	SubtotalBase   decimal.Decimal `json:"subtotalBase"`
	SubtotalLocal  decimal.Decimal `json:"subtotalLocal"`
}

// Sale is a persisted sale with its line items and the exchange rate applied
// at creation. RateApplied is immutable once the sale exists; historical
// amounts are never recomputed against a newer rate.
type Sale struct {
	SaleID      string          `json:"saleID"`
	ClientID    *string         `json:"clientID,omitempty"`
	ClientName  string          `json:"clientName,omitempty"`
	Items       []SaleItem      `json:"items,omitempty"`
	TotalBase   decimal.Decimal `json:"totalBase"`
	TotalLocal  decimal.Decimal `json:"totalLocal"`
	RateApplied decimal.Decimal `json:"rateApplied"`
	Status      SaleStatus      `json:"status"`
	SaleDate    time.Time       `json:"saleDate"`
	AuditFields
}

// Cart is the client-side draft of a sale. A cart is a value: AddItem returns
// a new cart rather than mutating the receiver, so concurrent UI edits cannot
// lose updates.
type Cart struct {
	Items []SaleItem
}

// AddItem validates the quantity against the product snapshot and appends a
// line item priced from the product's current dual-currency prices. The stock
// check here is optimistic; commit re-validates against the latest stock.
func (c Cart) AddItem(product Product, quantity int64) (Cart, error) {
	if quantity <= 0 {
		return c, fmt.Errorf("%w: quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}
	if quantity > product.Stock {
		return c, &apperrors.InsufficientStockError{
			ProductID: product.ProductID,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	qty := decimal.NewFromInt(quantity)
	item := SaleItem{
		ProductID:      product.ProductID,
		Quantity:       quantity,
		UnitPriceBase:  product.UnitPriceBase,
		UnitPriceLocal: product.UnitPriceLocal,
		SubtotalBase:   product.UnitPriceBase.Mul(qty),
		SubtotalLocal:  product.UnitPriceLocal.Mul(qty),
	}

	items := make([]SaleItem, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, item)
	return Cart{Items: items}, nil
}

// Reprice recomputes every line item's local-currency fields at the given
// rate. Prices may have been captured against a stale rate while the cart was
// open; commit always reprices at the rate it records on the sale.
func (c Cart) Reprice(rate decimal.Decimal) Cart {
	items := make([]SaleItem, len(c.Items))
	for i, item := range c.Items {
		qty := decimal.NewFromInt(item.Quantity)
		item.UnitPriceLocal = item.UnitPriceBase.Mul(rate)
		item.SubtotalBase = item.UnitPriceBase.Mul(qty)
		item.SubtotalLocal = item.UnitPriceLocal.Mul(qty)
		items[i] = item
	}
	return Cart{Items: items}
}

// Totals sums the line subtotals in both currencies.
func (c Cart) Totals() (totalBase, totalLocal decimal.Decimal) {
	totalBase, totalLocal = decimal.Zero, decimal.Zero
	for _, item := range c.Items {
		totalBase = totalBase.Add(item.SubtotalBase)
		totalLocal = totalLocal.Add(item.SubtotalLocal)
	}
	return totalBase, totalLocal
}

// QuantityByProduct aggregates quantities per distinct product, preserving
// first-seen order so stock updates run deterministically.
func (c Cart) QuantityByProduct() ([]string, map[string]int64) {
	order := make([]string, 0, len(c.Items))
	totals := make(map[string]int64, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID == "" {
			continue
		}
		if _, seen := totals[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		totals[item.ProductID] += item.Quantity
	}
	return order, totals
}
