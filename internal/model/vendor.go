package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vendor struct {
	BaseModel
	Name        string        `db:"name" json:"name"`
	ContactName string        `db:"contact_name" json:"contact_name"`
	Phone       string        `db:"phone" json:"phone"`
	Email       string        `db:"email" json:"email"`
	Address     string        `db:"address" json:"address"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	Quotes      []VendorQuote `db:"-" json:"quotes"`
}

// VendorQuote is one price-ledger row: one vendor quoting one item.
type VendorQuote struct {
	ID        string          `db:"id" json:"id"`
	VendorID  string          `db:"vendor_id" json:"vendor_id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Unit      string          `db:"unit" json:"unit"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
