package model

import "testing"

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name         string
		quantity     float64
		reserved     float64
		reorderLevel float64
		want         StockStatus
	}{
		{"healthy above reorder", 10, 0, 5, StockHealthy},
		{"low at reorder boundary", 5, 0, 5, StockLow},
		{"low below reorder", 3, 0, 5, StockLow},
		{"out at zero", 0, 0, 5, StockOut},
		{"out when reserved eats stock", 5, 5, 5, StockOut},
		{"out when reserved exceeds stock", 3, 8, 5, StockOut},
		{"reserved pushes into low", 10, 6, 5, StockLow},
		{"zero reorder level stays healthy", 1, 0, 0, StockHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStock(tt.quantity, tt.reserved, tt.reorderLevel)
			if got != tt.want {
				t.Errorf("ClassifyStock(%v, %v, %v) = %v, want %v",
					tt.quantity, tt.reserved, tt.reorderLevel, got, tt.want)
			}
		})
	}
}

func TestReclassifyLifecycle(t *testing.T) {
	item := InventoryItem{Quantity: 10, ReorderLevel: 5}

	item.Reclassify()
	if item.Status != StockHealthy {
		t.Fatalf("quantity 10: status = %v, want healthy", item.Status)
	}

	item.Quantity = 5
	item.Reclassify()
	if item.Status != StockLow {
		t.Fatalf("quantity 5: status = %v, want low", item.Status)
	}

	item.Quantity = 0
	item.Reclassify()
	if item.Status != StockOut {
		t.Fatalf("quantity 0: status = %v, want out", item.Status)
	}
}

func TestAvailable(t *testing.T) {
	item := InventoryItem{Quantity: 12, Reserved: 4.5}
	if got := item.Available(); got != 7.5 {
		t.Errorf("Available() = %v, want 7.5", got)
	}
}
