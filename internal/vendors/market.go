package vendor

import (
	"github.com/shopspring/decimal"
)

// MarketQuote is one vendor's standing price for an item.
type MarketQuote struct {
	VendorID   string          `db:"vendor_id" json:"vendor_id"`
	VendorName string          `db:"vendor_name" json:"vendor_name"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Unit       string          `db:"unit" json:"unit"`
}

// MarketAnalysis compares all vendor quotes for one item.
type MarketAnalysis struct {
	ItemName  string          `json:"item_name"`
	BestPrice decimal.Decimal `json:"best_price"`
	// Spread is the gap between the highest and lowest quote.
	Spread decimal.Decimal `json:"spread"`
	Quotes []MarketQuote   `json:"quotes"`
}

// AnalyzeMarket computes best price and spread across quotes. Returns nil when
// no vendor quotes the item.
func AnalyzeMarket(itemName string, quotes []MarketQuote) *MarketAnalysis {
	if len(quotes) == 0 {
		return nil
	}

	best := quotes[0].Price
	worst := quotes[0].Price
	for _, q := range quotes[1:] {
		if q.Price.LessThan(best) {
			best = q.Price
		}
		if q.Price.GreaterThan(worst) {
			worst = q.Price
		}
	}

	return &MarketAnalysis{
		ItemName:  itemName,
		BestPrice: best,
		Spread:    worst.Sub(best),
		Quotes:    quotes,
	}
}
