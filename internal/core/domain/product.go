package domain

import "github.com/shopspring/decimal"

// Product is an inventory item priced in both currencies. The local price is
// recomputed from the base price whenever the base price changes, at the rate
// in effect at that write. Stock is a non-negative integer; sale persistence
// decrements it and sale deletion restores it.
type Product struct {
	ProductID      string           `json:"productID"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	UnitPriceBase  decimal.Decimal  `json:"unitPriceBase"`  // USD
	UnitPriceLocal decimal.Decimal  `json:"unitPriceLocal"` // Bs, derived
	Stock          int64            `json:"stock"`
	Weight         *decimal.Decimal `json:"weight,omitempty"` // kg, optional
	Category       string           `json:"category"`
	AuditFields
}
