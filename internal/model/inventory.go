package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockHealthy StockStatus = "healthy"
	StockLow     StockStatus = "low"
	StockOut     StockStatus = "out"
)

type InventoryItem struct {
	BaseModel
	Name          string          `db:"name" json:"name"`
	Brand         string          `db:"brand" json:"brand"`
	Category      string          `db:"category" json:"category"`
	Unit          string          `db:"unit" json:"unit"`
	Quantity      float64         `db:"quantity" json:"quantity"`
	Reserved      float64         `db:"reserved" json:"reserved"`
	ReorderLevel  float64         `db:"reorder_level" json:"reorder_level"`
	LastPrice     decimal.Decimal `db:"last_price" json:"last_price"`
	Status        StockStatus     `db:"status" json:"status"`
	LastRestocked *time.Time      `db:"last_restocked" json:"last_restocked"`
}

// Available is the stock usable for new plans: on hand minus soft-allocated.
func (i *InventoryItem) Available() float64 {
	return i.Quantity - i.Reserved
}

// ClassifyStock maps (quantity, reserved, reorderLevel) to a stock status.
// available == reorderLevel counts as low (inclusive threshold).
func ClassifyStock(quantity, reserved, reorderLevel float64) StockStatus {
	available := quantity - reserved
	switch {
	case available <= 0:
		return StockOut
	case available <= reorderLevel:
		return StockLow
	default:
		return StockHealthy
	}
}

// Reclassify recomputes and stores the denormalized status column value.
func (i *InventoryItem) Reclassify() {
	i.Status = ClassifyStock(i.Quantity, i.Reserved, i.ReorderLevel)
}

type InventoryMovement struct {
	ID             string    `db:"id" json:"id"`
	ItemID         string    `db:"item_id" json:"item_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange float64   `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64   `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64   `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

const (
	MovementAdjustment  = "adjustment"
	MovementConsumption = "consumption"
	MovementReceipt     = "receipt"
)
