package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProcurementSource string

const (
	// SourceDerived entries are recomputed from the live inventory snapshot on
	// every observation and never persisted.
	SourceDerived ProcurementSource = "derived"
	// SourceManual entries are staff-filed rows that live until fulfilled or
	// cancelled.
	SourceManual ProcurementSource = "manual"
)

// DerivedShortagePrefix is the id scheme for synthetic shortage records.
const DerivedShortagePrefix = "SHORT-"

// PendingProcurement is one entry of the combined procurement queue: either a
// derived shortage or a persisted manual request. Only manual entries may be
// deleted.
type PendingProcurement struct {
	ID             string            `json:"id"`
	Source         ProcurementSource `json:"source"`
	IngredientName string            `json:"ingredient_name"`
	Brand          string            `json:"brand"`
	Unit           string            `json:"unit"`
	RequiredQty    float64           `json:"required_qty"`
	CurrentStock   float64           `json:"current_stock"`
	ShortageQty    float64           `json:"shortage_qty"`
	RequiredBy     time.Time         `json:"required_by"`
	CreatedAt      time.Time         `json:"created_at"`
}

// DerivedShortage builds the synthetic shortage record for an understocked
// item. Target restock level is twice the reorder level.
func DerivedShortage(item *InventoryItem, now time.Time) PendingProcurement {
	requiredQty := item.ReorderLevel * 2
	shortage := requiredQty - item.Quantity
	if shortage < 0 {
		shortage = 0
	}
	return PendingProcurement{
		ID:             DerivedShortagePrefix + item.ID,
		Source:         SourceDerived,
		IngredientName: item.Name,
		Brand:          item.Brand,
		Unit:           item.Unit,
		RequiredQty:    requiredQty,
		CurrentStock:   item.Quantity,
		ShortageQty:    shortage,
		RequiredBy:     now,
		CreatedAt:      now,
	}
}

// ProcurementRequest is the persisted form of a manually filed request.
type ProcurementRequest struct {
	ID             string    `db:"id" json:"id"`
	IngredientName string    `db:"ingredient_name" json:"ingredient_name"`
	Brand          string    `db:"brand" json:"brand"`
	Unit           string    `db:"unit" json:"unit"`
	RequiredQty    float64   `db:"required_qty" json:"required_qty"`
	CurrentStock   float64   `db:"current_stock" json:"current_stock"`
	ShortageQty    float64   `db:"shortage_qty" json:"shortage_qty"`
	RequiredBy     time.Time `db:"required_by" json:"required_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

func (r *ProcurementRequest) Pending() PendingProcurement {
	return PendingProcurement{
		ID:             r.ID,
		Source:         SourceManual,
		IngredientName: r.IngredientName,
		Brand:          r.Brand,
		Unit:           r.Unit,
		RequiredQty:    r.RequiredQty,
		CurrentStock:   r.CurrentStock,
		ShortageQty:    r.ShortageQty,
		RequiredBy:     r.RequiredBy,
		CreatedAt:      r.CreatedAt,
	}
}

type POStatus string

const (
	POPending  POStatus = "pending"
	POReceived POStatus = "received"
)

type PurchaseOrder struct {
	BaseModel
	OrderNumber      string              `db:"order_number" json:"order_number"`
	VendorID         *string             `db:"vendor_id" json:"vendor_id"`
	VendorName       string              `db:"vendor_name" json:"vendor_name"`
	Status           POStatus            `db:"status" json:"status"`
	TotalCost        decimal.Decimal     `db:"total_cost" json:"total_cost"`
	ExpectedDelivery time.Time           `db:"expected_delivery" json:"expected_delivery"`
	ReceivedAt       *time.Time          `db:"received_at" json:"received_at"`
	Items            []PurchaseOrderItem `db:"-" json:"items"`
}

type PurchaseOrderItem struct {
	ID             string          `db:"id" json:"id"`
	OrderID        string          `db:"order_id" json:"order_id"`
	IngredientName string          `db:"ingredient_name" json:"ingredient_name"`
	Brand          string          `db:"brand" json:"brand"`
	Quantity       float64         `db:"quantity" json:"quantity"`
	Unit           string          `db:"unit" json:"unit"`
	PriceAtOrder   decimal.Decimal `db:"price_at_order" json:"price_at_order"`
}

// LineTotal is quantity × unit price.
func (it *PurchaseOrderItem) LineTotal() decimal.Decimal {
	return it.PriceAtOrder.Mul(decimal.NewFromFloat(it.Quantity))
}
