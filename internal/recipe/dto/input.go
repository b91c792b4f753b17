package dto

type IngredientInput struct {
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Unit             string  `json:"unit"`
	InventoryItemID  *string `json:"inventory_item_id"`
	ConversionFactor float64 `json:"conversion_factor"`
}

type CreateRecipeInput struct {
	Name        string            `json:"name"`
	Ingredients []IngredientInput `json:"ingredients"`
}

type UpdateRecipeInput struct {
	ID          string            `json:"-"`
	Name        string            `json:"name"`
	Ingredients []IngredientInput `json:"ingredients"`
}
