package extraction

import (
	"context"

	"github.com/rasoihq/kitchen-service/internal/model"
)

type UseCase interface {
	// ImportPriceList extracts vendor quotes from an uploaded document and
	// replaces the vendor's price ledger with them.
	ImportPriceList(ctx context.Context, vendorID string, content []byte, mimeType string) (*model.Vendor, error)
	// ImportRecipe extracts one recipe with its ingredient list from an
	// uploaded document and creates it.
	ImportRecipe(ctx context.Context, content []byte, mimeType string) (*model.Recipe, error)
}
