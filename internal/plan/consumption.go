package plan

import (
	"sort"

	"github.com/rasoihq/kitchen-service/internal/model"
)

// MissingRecipes returns the planned dish names that no recipe resolves,
// deduplicated case-insensitively, in sorted order.
func MissingRecipes(p *model.ProductionPlan, idx model.RecipeIndex) []string {
	seen := make(map[string]string)
	for _, name := range p.DishNames() {
		if _, ok := idx.Resolve(name); ok {
			continue
		}
		key := model.NormalizeKey(name)
		if _, dup := seen[key]; !dup {
			seen[key] = name
		}
	}

	missing := make([]string, 0, len(seen))
	for _, name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// BuildDeductions accumulates per-item stock deductions for everything the
// plan records as cooked. For each dish detail with a positive amount cooked,
// every ingredient of its recipe contributes
//
//	amount × amountCooked × conversionFactor
//
// against the linked inventory item, falling back to a case-insensitive name
// match when no explicit link is set. Ingredients matching no item are skipped.
func BuildDeductions(p *model.ProductionPlan, idx model.RecipeIndex, items []model.InventoryItem) map[string]float64 {
	byID := make(map[string]*model.InventoryItem, len(items))
	byName := make(map[string]*model.InventoryItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
		key := model.NormalizeKey(items[i].Name)
		if _, dup := byName[key]; !dup {
			byName[key] = &items[i]
		}
	}

	deductions := make(map[string]float64)
	for _, meal := range p.Meals {
		for _, dish := range meal.DishDetails {
			if dish.AmountCooked <= 0 {
				continue
			}
			rec, ok := idx.Resolve(dish.Name)
			if !ok {
				continue
			}
			for i := range rec.Ingredients {
				ing := &rec.Ingredients[i]
				item := matchItem(ing, byID, byName)
				if item == nil {
					continue
				}
				deductions[item.ID] += ing.Amount * dish.AmountCooked * ing.EffectiveConversion()
			}
		}
	}
	return deductions
}

func matchItem(ing *model.Ingredient, byID, byName map[string]*model.InventoryItem) *model.InventoryItem {
	if ing.InventoryItemID != nil && *ing.InventoryItemID != "" {
		if item, ok := byID[*ing.InventoryItemID]; ok {
			return item
		}
	}
	return byName[model.NormalizeKey(ing.Name)]
}
