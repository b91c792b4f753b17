package vendor

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAnalyzeMarket(t *testing.T) {
	quotes := []MarketQuote{
		{VendorID: "v1", VendorName: "Sharma Traders", Price: decimal.NewFromInt(95), Unit: "kg"},
		{VendorID: "v2", VendorName: "Gupta & Sons", Price: decimal.NewFromInt(105), Unit: "kg"},
	}

	analysis := AnalyzeMarket("Lentils", quotes)
	if analysis == nil {
		t.Fatal("got nil analysis")
	}
	if !analysis.BestPrice.Equal(decimal.NewFromInt(95)) {
		t.Errorf("best price = %s, want 95", analysis.BestPrice)
	}
	if !analysis.Spread.Equal(decimal.NewFromInt(10)) {
		t.Errorf("spread = %s, want 10", analysis.Spread)
	}
	if len(analysis.Quotes) != 2 {
		t.Errorf("got %d quotes, want 2", len(analysis.Quotes))
	}
}

func TestAnalyzeMarketSingleQuote(t *testing.T) {
	quotes := []MarketQuote{
		{VendorID: "v1", Price: decimal.NewFromFloat(42.50)},
	}

	analysis := AnalyzeMarket("Ghee", quotes)
	if !analysis.BestPrice.Equal(decimal.NewFromFloat(42.50)) {
		t.Errorf("best price = %s, want 42.5", analysis.BestPrice)
	}
	if !analysis.Spread.IsZero() {
		t.Errorf("spread = %s, want 0", analysis.Spread)
	}
}

func TestAnalyzeMarketNoQuotes(t *testing.T) {
	if analysis := AnalyzeMarket("Unicorn Dust", nil); analysis != nil {
		t.Errorf("got %+v, want nil", analysis)
	}
}
