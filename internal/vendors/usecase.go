package vendor

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/vendors/dto"
)

type UseCase interface {
	CreateVendor(ctx context.Context, input *dto.CreateVendorInput) (*model.Vendor, error)
	GetVendor(ctx context.Context, id string) (*model.Vendor, error)
	ListVendors(ctx context.Context, filters *dto.VendorFilters) ([]model.Vendor, int, error)
	UpdateVendor(ctx context.Context, input *dto.UpdateVendorInput) (*model.Vendor, error)
	DeleteVendor(ctx context.Context, id string) error

	// SetQuotes replaces the vendor's price ledger.
	SetQuotes(ctx context.Context, vendorID string, inputs []dto.QuoteInput) (*model.Vendor, error)
	// MarketAnalysis compares all vendor quotes for one item; nil when nobody
	// quotes it.
	MarketAnalysis(ctx context.Context, itemName string) (*MarketAnalysis, error)
}
