package model

type Recipe struct {
	BaseModel
	Name        string       `db:"name" json:"name"`
	Ingredients []Ingredient `db:"-" json:"ingredients"`
}

type Ingredient struct {
	ID       string `db:"id" json:"id"`
	RecipeID string `db:"recipe_id" json:"recipe_id"`
	Name     string `db:"name" json:"name"`
	// Amount is the quantity used per one output unit (one batch) of the recipe.
	Amount float64 `db:"amount" json:"amount"`
	Unit   string  `db:"unit" json:"unit"`
	// InventoryItemID links the ingredient to stock explicitly; deduction falls
	// back to a case-insensitive name match when nil.
	InventoryItemID *string `db:"inventory_item_id" json:"inventory_item_id"`
	// ConversionFactor scales amount × batches into the raw deduction,
	// accounting for yield/trim loss. Zero is treated as 1.
	ConversionFactor float64 `db:"conversion_factor" json:"conversion_factor"`
}

// EffectiveConversion returns the factor to apply to deductions.
func (ing *Ingredient) EffectiveConversion() float64 {
	if ing.ConversionFactor == 0 {
		return 1
	}
	return ing.ConversionFactor
}

// RecipeIndex is a normalized-name lookup built once per computation pass so
// the case-insensitive matching rule lives in one place.
type RecipeIndex map[string]*Recipe

func BuildRecipeIndex(recipes []Recipe) RecipeIndex {
	idx := make(RecipeIndex, len(recipes))
	for i := range recipes {
		idx[NormalizeKey(recipes[i].Name)] = &recipes[i]
	}
	return idx
}

// Resolve looks a dish name up against recipe names.
func (idx RecipeIndex) Resolve(dishName string) (*Recipe, bool) {
	r, ok := idx[NormalizeKey(dishName)]
	return r, ok
}
