package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rasoihq/kitchen-service/internal/forecast"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

// cacheKey matches the "forecast:*" invalidation pattern fired on inventory,
// recipe and plan changes.
const cacheKey = "forecast:v1"

type forecastUseCase struct {
	plans     forecast.PlanSource
	recipes   forecast.RecipeSource
	inventory forecast.InventorySource
	cache     *cache.RedisClient
	logger    logger.ZapLogger
}

func NewForecastUseCase(plans forecast.PlanSource, recipes forecast.RecipeSource, inv forecast.InventorySource, redis *cache.RedisClient, log logger.ZapLogger) forecast.UseCase {
	return &forecastUseCase{
		plans:     plans,
		recipes:   recipes,
		inventory: inv,
		cache:     redis,
		logger:    log,
	}
}

func (uc *forecastUseCase) Forecast(ctx context.Context) ([]model.ForecastEntry, error) {
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached []model.ForecastEntry
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	plans, err := uc.plans.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := uc.recipes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := forecast.Compute(plans, recipes, items, time.Now())

	if uc.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}
	return entries, nil
}
