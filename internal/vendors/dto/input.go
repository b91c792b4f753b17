package dto

import "github.com/shopspring/decimal"

type CreateVendorInput struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type UpdateVendorInput struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	IsActive    bool   `json:"is_active"`
}

type QuoteInput struct {
	ItemName string          `json:"item_name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
}

type SetQuotesInput struct {
	Quotes []QuoteInput `json:"quotes"`
}
