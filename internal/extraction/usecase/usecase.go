package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/extraction"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/recipe"
	recipedto "github.com/rasoihq/kitchen-service/internal/recipe/dto"
	"github.com/rasoihq/kitchen-service/internal/vendors"
	vendordto "github.com/rasoihq/kitchen-service/internal/vendors/dto"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

const priceListSchema = `[{"item_name": "string", "price": 0.0, "unit": "string"}]`

const priceListInstructions = `Extract every item and its price from this vendor price list document.`

const recipeSchema = `{"name": "string", "ingredients": [{"name": "string", "amount": 0.0, "unit": "string"}]}`

const recipeInstructions = `Extract the recipe name and its full ingredient list with amounts from this document.`

type extractionUseCase struct {
	extractor extraction.Extractor
	vendors   vendor.UseCase
	recipes   recipe.UseCase
	logger    logger.ZapLogger
}

func NewExtractionUseCase(extractor extraction.Extractor, vendors vendor.UseCase, recipes recipe.UseCase, log logger.ZapLogger) extraction.UseCase {
	return &extractionUseCase{
		extractor: extractor,
		vendors:   vendors,
		recipes:   recipes,
		logger:    log,
	}
}

func (uc *extractionUseCase) ImportPriceList(ctx context.Context, vendorID string, content []byte, mimeType string) (*model.Vendor, error) {
	raw, err := uc.extractor.Extract(ctx, content, mimeType, priceListInstructions, priceListSchema)
	if err != nil {
		return nil, err
	}
	msg, err := extraction.RecoverJSON(raw)
	if err != nil {
		uc.logger.Warn("price list extraction returned unparseable output", zap.String("vendor_id", vendorID))
		return nil, err
	}

	var rows []struct {
		ItemName string          `json:"item_name"`
		Price    decimal.Decimal `json:"price"`
		Unit     string          `json:"unit"`
	}
	if err := json.Unmarshal(msg, &rows); err != nil {
		return nil, extraction.ErrExtractionFailed
	}

	quotes := make([]vendordto.QuoteInput, 0, len(rows))
	for _, row := range rows {
		if row.ItemName == "" {
			continue
		}
		quotes = append(quotes, vendordto.QuoteInput{
			ItemName: row.ItemName,
			Price:    row.Price,
			Unit:     row.Unit,
		})
	}
	if len(quotes) == 0 {
		return nil, extraction.ErrExtractionFailed
	}

	return uc.vendors.SetQuotes(ctx, vendorID, quotes)
}

func (uc *extractionUseCase) ImportRecipe(ctx context.Context, content []byte, mimeType string) (*model.Recipe, error) {
	raw, err := uc.extractor.Extract(ctx, content, mimeType, recipeInstructions, recipeSchema)
	if err != nil {
		return nil, err
	}
	msg, err := extraction.RecoverJSON(raw)
	if err != nil {
		uc.logger.Warn("recipe extraction returned unparseable output")
		return nil, err
	}

	var parsed struct {
		Name        string `json:"name"`
		Ingredients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"ingredients"`
	}
	if err := json.Unmarshal(msg, &parsed); err != nil || parsed.Name == "" {
		return nil, extraction.ErrExtractionFailed
	}

	input := &recipedto.CreateRecipeInput{Name: parsed.Name}
	for _, ing := range parsed.Ingredients {
		if ing.Name == "" {
			continue
		}
		input.Ingredients = append(input.Ingredients, recipedto.IngredientInput{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	return uc.recipes.CreateRecipe(ctx, input)
}
