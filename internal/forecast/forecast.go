package forecast

import (
	"context"
	"time"

	"github.com/rasoihq/kitchen-service/internal/model"
)

// PlanSource supplies approved plans whose inventory is not yet deducted.
type PlanSource interface {
	ListOpen(ctx context.Context) ([]model.ProductionPlan, error)
}

type RecipeSource interface {
	ListAll(ctx context.Context) ([]model.Recipe, error)
}

type InventorySource interface {
	ListAll(ctx context.Context) ([]model.InventoryItem, error)
}

type UseCase interface {
	// Forecast projects ingredient usage over the 7 and 30 day horizons against
	// current stock.
	Forecast(ctx context.Context) ([]model.ForecastEntry, error)
}

// usage holds accumulated ingredient demand keyed by normalized name.
type usage struct {
	next7  float64
	next30 float64
}

// Compute projects ingredient consumption from open production plans against
// the inventory snapshot. Each planned dish occurrence counts as one recipe
// batch; dishes with no matching recipe are skipped and surface through the
// pending-dishes listing instead. Output order follows the inventory snapshot.
func Compute(plans []model.ProductionPlan, recipes []model.Recipe, items []model.InventoryItem, now time.Time) []model.ForecastEntry {
	boundary7 := now.AddDate(0, 0, 7)
	boundary30 := now.AddDate(0, 0, 30)

	idx := model.BuildRecipeIndex(recipes)
	demand := make(map[string]*usage)

	for _, p := range plans {
		if p.Date.IsZero() {
			continue
		}
		in7 := !p.Date.After(boundary7)
		in30 := !p.Date.After(boundary30)
		if !in30 {
			continue
		}
		for _, meal := range p.Meals {
			for _, dishName := range meal.Dishes {
				rec, ok := idx.Resolve(dishName)
				if !ok {
					continue
				}
				for i := range rec.Ingredients {
					ing := &rec.Ingredients[i]
					key := model.NormalizeKey(ing.Name)
					u := demand[key]
					if u == nil {
						u = &usage{}
						demand[key] = u
					}
					if in7 {
						u.next7 += ing.Amount
					}
					u.next30 += ing.Amount
				}
			}
		}
	}

	entries := make([]model.ForecastEntry, 0, len(items))
	for i := range items {
		item := &items[i]
		u := demand[model.NormalizeKey(item.Name)]
		var next7, next30 float64
		if u != nil {
			next7 = u.next7
			next30 = u.next30
		}

		available := item.Available()
		status := model.ForecastSafe
		switch {
		case available <= 0:
			status = model.ForecastEmpty
		case available < next7:
			status = model.ForecastCritical
		}

		entries = append(entries, model.ForecastEntry{
			Name:    item.Name,
			Current: available,
			Next7:   next7,
			Next30:  next30,
			Status:  status,
			Unit:    item.Unit,
		})
	}
	return entries
}
