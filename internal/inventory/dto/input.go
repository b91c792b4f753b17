package dto

import "github.com/shopspring/decimal"

type CreateItemInput struct {
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     float64         `json:"quantity"`
	Reserved     float64         `json:"reserved"`
	ReorderLevel float64         `json:"reorder_level"`
	LastPrice    decimal.Decimal `json:"last_price"`
}

type UpdateItemInput struct {
	ID           string          `json:"-"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     float64         `json:"quantity"`
	Reserved     float64         `json:"reserved"`
	ReorderLevel float64         `json:"reorder_level"`
	LastPrice    decimal.Decimal `json:"last_price"`
}

type AdjustStockInput struct {
	ItemID         string  `json:"-"`
	QuantityChange float64 `json:"quantity_change"`
	Reason         string  `json:"reason"`
	ReferenceID    string  `json:"reference_id"`
	ReferenceType  string  `json:"reference_type"`
	UserID         string  `json:"-"`
}
