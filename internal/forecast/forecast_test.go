package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/rasoihq/kitchen-service/internal/model"
)

func planOn(date time.Time, dishes ...string) model.ProductionPlan {
	return model.ProductionPlan{
		Date:  date,
		Meals: model.Meals{{MealType: "lunch", Dishes: dishes}},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Lentils", Amount: 2}}},
	}
	items := []model.InventoryItem{
		{Name: "Lentils", Quantity: 100, Unit: "kg"},
	}

	// Exactly seven days out counts toward next7.
	plans := []model.ProductionPlan{planOn(now.AddDate(0, 0, 7), "Dal")}
	entries := Compute(plans, recipes, items, now)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !almostEqual(entries[0].Next7, 2) {
		t.Errorf("boundary plan: Next7 = %v, want 2", entries[0].Next7)
	}
	if !almostEqual(entries[0].Next30, 2) {
		t.Errorf("boundary plan: Next30 = %v, want 2", entries[0].Next30)
	}

	// Eight days out lands only in next30.
	plans = []model.ProductionPlan{planOn(now.AddDate(0, 0, 8), "Dal")}
	entries = Compute(plans, recipes, items, now)
	if !almostEqual(entries[0].Next7, 0) {
		t.Errorf("past-boundary plan: Next7 = %v, want 0", entries[0].Next7)
	}
	if !almostEqual(entries[0].Next30, 2) {
		t.Errorf("past-boundary plan: Next30 = %v, want 2", entries[0].Next30)
	}
}

func TestComputeCaseInsensitiveResolution(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal Tadka", Ingredients: []model.Ingredient{{Name: "Lentils", Amount: 3}}},
	}
	items := []model.InventoryItem{{Name: "lentils", Quantity: 50}}
	plans := []model.ProductionPlan{planOn(now.AddDate(0, 0, 1), "  dal tadka ")}

	entries := Compute(plans, recipes, items, now)
	if !almostEqual(entries[0].Next7, 3) {
		t.Errorf("Next7 = %v, want 3 (dish should resolve despite case/whitespace)", entries[0].Next7)
	}
}

func TestComputeUnresolvedDishSkipped(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Lentils", Amount: 2}}},
	}
	items := []model.InventoryItem{{Name: "Lentils", Quantity: 50}}
	plans := []model.ProductionPlan{planOn(now.AddDate(0, 0, 1), "Mystery Curry")}

	entries := Compute(plans, recipes, items, now)
	if !almostEqual(entries[0].Next7, 0) {
		t.Errorf("Next7 = %v, want 0 (unmapped dish must not count)", entries[0].Next7)
	}
}

func TestComputeStatusClassification(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{
			{Name: "Lentils", Amount: 10},
			{Name: "Ghee", Amount: 1},
		}},
	}
	items := []model.InventoryItem{
		{Name: "Lentils", Quantity: 5},              // demand 10 > available 5
		{Name: "Ghee", Quantity: 4},                 // demand 1 < available 4
		{Name: "Salt", Quantity: 2, Reserved: 2},    // available 0
		{Name: "Cumin", Quantity: 3, Reserved: 3.5}, // available negative
	}
	plans := []model.ProductionPlan{planOn(now.AddDate(0, 0, 3), "Dal")}

	entries := Compute(plans, recipes, items, now)
	want := []model.ForecastStatus{
		model.ForecastCritical,
		model.ForecastSafe,
		model.ForecastEmpty,
		model.ForecastEmpty,
	}
	for i, status := range want {
		if entries[i].Status != status {
			t.Errorf("entry %d (%s): status = %v, want %v", i, entries[i].Name, entries[i].Status, status)
		}
	}
}

func TestComputeOrderFollowsInventory(t *testing.T) {
	now := time.Now()
	items := []model.InventoryItem{
		{Name: "Zucchini"}, {Name: "Apples"}, {Name: "Milk"},
	}
	entries := Compute(nil, nil, items, now)

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, item := range items {
		if entries[i].Name != item.Name {
			t.Errorf("entry %d = %q, want %q (input order must be preserved)", i, entries[i].Name, item.Name)
		}
	}
}

func TestComputeZeroDateSkipped(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Lentils", Amount: 2}}},
	}
	items := []model.InventoryItem{{Name: "Lentils", Quantity: 50}}
	plans := []model.ProductionPlan{planOn(time.Time{}, "Dal")}

	entries := Compute(plans, recipes, items, now)
	if !almostEqual(entries[0].Next30, 0) {
		t.Errorf("Next30 = %v, want 0 (plan with zero date must not count)", entries[0].Next30)
	}
}

func TestComputeAccumulatesAcrossPlans(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	recipes := []model.Recipe{
		{Name: "Dal", Ingredients: []model.Ingredient{{Name: "Lentils", Amount: 2}}},
	}
	items := []model.InventoryItem{{Name: "Lentils", Quantity: 50}}
	plans := []model.ProductionPlan{
		planOn(now.AddDate(0, 0, 1), "Dal"),
		planOn(now.AddDate(0, 0, 2), "Dal", "Dal"),
	}

	entries := Compute(plans, recipes, items, now)
	// One batch per dish occurrence: three occurrences of Dal.
	if !almostEqual(entries[0].Next7, 6) {
		t.Errorf("Next7 = %v, want 6", entries[0].Next7)
	}
}
