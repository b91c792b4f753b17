package vendor

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/vendors/dto"
)

type Repository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	FindByID(ctx context.Context, id string) (*model.Vendor, error)
	FindAll(ctx context.Context, filters *dto.VendorFilters) ([]model.Vendor, int, error)
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id string) error

	// ReplaceQuotes swaps the vendor's whole price ledger in one transaction.
	ReplaceQuotes(ctx context.Context, vendorID string, quotes []model.VendorQuote) error
	// QuotesForItem returns all active vendors' quotes for an item,
	// case-insensitively matched.
	QuotesForItem(ctx context.Context, itemName string) ([]MarketQuote, error)
}
