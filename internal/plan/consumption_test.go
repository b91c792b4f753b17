package plan

import (
	"math"
	"testing"

	"github.com/rasoihq/kitchen-service/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMissingRecipes(t *testing.T) {
	idx := model.BuildRecipeIndex([]model.Recipe{{Name: "Dal"}, {Name: "Rice"}})

	p := &model.ProductionPlan{
		Meals: model.Meals{
			{MealType: "lunch", Dishes: []string{"dal", "Paneer Tikka"}},
			{MealType: "dinner", Dishes: []string{"RICE", "paneer tikka", "Kheer"}},
		},
	}

	missing := MissingRecipes(p, idx)
	if len(missing) != 2 {
		t.Fatalf("got %d missing dishes %v, want 2", len(missing), missing)
	}
	// Deduplicated case-insensitively, sorted.
	if missing[0] != "Kheer" || missing[1] != "Paneer Tikka" {
		t.Errorf("missing = %v, want [Kheer, Paneer Tikka]", missing)
	}
}

func TestMissingRecipesEmptyWhenAllResolve(t *testing.T) {
	idx := model.BuildRecipeIndex([]model.Recipe{{Name: "Dal"}})
	p := &model.ProductionPlan{
		Meals: model.Meals{{MealType: "lunch", Dishes: []string{" DAL "}}},
	}
	if missing := MissingRecipes(p, idx); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestBuildDeductionsArithmetic(t *testing.T) {
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{
			{Name: "Lentils", Amount: 2, ConversionFactor: 1.1},
		}},
	}
	idx := model.BuildRecipeIndex(recipes)
	items := []model.InventoryItem{
		{BaseModel: model.BaseModel{ID: "item-lentils"}, Name: "Lentils", Quantity: 10},
	}
	p := &model.ProductionPlan{
		Meals: model.Meals{{
			MealType:    "lunch",
			Dishes:      []string{"Dal"},
			DishDetails: []model.DishDetail{{Name: "Dal", AmountCooked: 3}},
		}},
	}

	deductions := BuildDeductions(p, idx, items)
	if !almostEqual(deductions["item-lentils"], 6.6) {
		t.Errorf("deduction = %v, want 6.6 (2 × 3 × 1.1)", deductions["item-lentils"])
	}
}

func TestBuildDeductionsAccumulatesAcrossDishes(t *testing.T) {
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Onions", Amount: 1}}},
		{Name: "Sabzi", Ingredients: []model.Ingredient{{Name: "Onions", Amount: 0.5}}},
	}
	idx := model.BuildRecipeIndex(recipes)
	items := []model.InventoryItem{
		{BaseModel: model.BaseModel{ID: "item-onions"}, Name: "Onions", Quantity: 20},
	}
	p := &model.ProductionPlan{
		Meals: model.Meals{{
			MealType: "lunch",
			DishDetails: []model.DishDetail{
				{Name: "Dal", AmountCooked: 2},
				{Name: "Sabzi", AmountCooked: 4},
			},
		}},
	}

	deductions := BuildDeductions(p, idx, items)
	// 1×2 + 0.5×4 = 4 against the same item.
	if !almostEqual(deductions["item-onions"], 4) {
		t.Errorf("deduction = %v, want 4", deductions["item-onions"])
	}
}

func TestBuildDeductionsExplicitLinkWins(t *testing.T) {
	linkID := "item-branded"
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{
			{Name: "Lentils", Amount: 2, InventoryItemID: &linkID},
		}},
	}
	idx := model.BuildRecipeIndex(recipes)
	items := []model.InventoryItem{
		{BaseModel: model.BaseModel{ID: "item-name-match"}, Name: "Lentils"},
		{BaseModel: model.BaseModel{ID: "item-branded"}, Name: "Organic Lentils"},
	}
	p := &model.ProductionPlan{
		Meals: model.Meals{{
			DishDetails: []model.DishDetail{{Name: "Dal", AmountCooked: 1}},
		}},
	}

	deductions := BuildDeductions(p, idx, items)
	if _, hit := deductions["item-name-match"]; hit {
		t.Error("name-matched item deducted despite explicit link")
	}
	if !almostEqual(deductions["item-branded"], 2) {
		t.Errorf("linked item deduction = %v, want 2", deductions["item-branded"])
	}
}

func TestBuildDeductionsSkipsUncookedAndUnmatched(t *testing.T) {
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Saffron", Amount: 1}}},
	}
	idx := model.BuildRecipeIndex(recipes)
	items := []model.InventoryItem{
		{BaseModel: model.BaseModel{ID: "item-lentils"}, Name: "Lentils"},
	}
	p := &model.ProductionPlan{
		Meals: model.Meals{{
			DishDetails: []model.DishDetail{
				{Name: "Dal", AmountCooked: 0}, // nothing cooked
				{Name: "Dal", AmountCooked: 2}, // saffron matches no item
			},
		}},
	}

	deductions := BuildDeductions(p, idx, items)
	if len(deductions) != 0 {
		t.Errorf("deductions = %v, want none", deductions)
	}
}
