package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    string
		want     string
	}{
		{"whole units", 10, "42", "420"},
		{"fractional price", 3, "0.1", "0.3"},
		{"fractional quantity", 2.5, "95.99", "239.975"},
		{"zero price", 100, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := PurchaseOrderItem{
				Quantity:     tt.quantity,
				PriceAtOrder: decimal.RequireFromString(tt.price),
			}
			if got := item.LineTotal(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("LineTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineTotalSumAvoidsFloatDrift(t *testing.T) {
	// 0.1 × 3 accumulated ten times must be exactly 3, not 2.9999999...
	total := decimal.Zero
	for i := 0; i < 10; i++ {
		item := PurchaseOrderItem{Quantity: 3, PriceAtOrder: decimal.RequireFromString("0.1")}
		total = total.Add(item.LineTotal())
	}
	if !total.Equal(decimal.NewFromInt(3)) {
		t.Errorf("total = %s, want 3", total)
	}
}
