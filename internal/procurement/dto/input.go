package dto

import "github.com/shopspring/decimal"

type CreateRequestInput struct {
	IngredientName string  `json:"ingredient_name"`
	Brand          string  `json:"brand"`
	Unit           string  `json:"unit"`
	RequiredQty    float64 `json:"required_qty"`
	CurrentStock   float64 `json:"current_stock"`
	ShortageQty    float64 `json:"shortage_qty"`
	RequiredBy     string  `json:"required_by"`
}

type DraftOrderInput struct {
	IDs []string `json:"ids"`
}

type OrderLineInput struct {
	IngredientName string          `json:"ingredient_name"`
	Brand          string          `json:"brand"`
	Quantity       float64         `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

type FinalizeOrderInput struct {
	VendorID   string           `json:"vendor_id"`
	VendorName string           `json:"vendor_name"`
	Items      []OrderLineInput `json:"items"`
	// RequestIDs are the manual queue entries consumed by this order; they are
	// deleted in the same transaction that creates it.
	RequestIDs []string `json:"request_ids"`
}
