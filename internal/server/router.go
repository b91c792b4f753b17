package server

import (
	"net/http"

	"github.com/rasoihq/kitchen-service/internal/auth"
	brandhandler "github.com/rasoihq/kitchen-service/internal/brand/handler"
	extractionhandler "github.com/rasoihq/kitchen-service/internal/extraction/handler"
	forecasthandler "github.com/rasoihq/kitchen-service/internal/forecast/handler"
	inventoryhandler "github.com/rasoihq/kitchen-service/internal/inventory/handler"
	planhandler "github.com/rasoihq/kitchen-service/internal/plan/handler"
	procurementhandler "github.com/rasoihq/kitchen-service/internal/procurement/handler"
	recipehandler "github.com/rasoihq/kitchen-service/internal/recipe/handler"
	userhandler "github.com/rasoihq/kitchen-service/internal/user/handler"
	vendorhandler "github.com/rasoihq/kitchen-service/internal/vendors/handler"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

type Handlers struct {
	Brands      *brandhandler.BrandHandler
	Inventory   *inventoryhandler.InventoryHandler
	Recipes     *recipehandler.RecipeHandler
	Plans       *planhandler.PlanHandler
	Forecast    *forecasthandler.ForecastHandler
	Procurement *procurementhandler.ProcurementHandler
	Vendors     *vendorhandler.VendorHandler
	Users       *userhandler.UserHandler
	Extraction  *extractionhandler.ExtractionHandler
	Events      *EventsHandler
}

// NewRouter wires every route. Everything under /api/v1 except login and
// health requires a valid session token.
func NewRouter(h *Handlers, tokens *auth.TokenManager, log logger.ZapLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/v1/auth/login", h.Users.Login)

	protected := http.NewServeMux()

	protected.HandleFunc("GET /api/v1/auth/me", h.Users.Me)
	protected.HandleFunc("GET /api/v1/users", h.Users.List)
	protected.HandleFunc("POST /api/v1/users", h.Users.Create)
	protected.HandleFunc("PUT /api/v1/users/{id}", h.Users.Update)

	protected.HandleFunc("GET /api/v1/brands", h.Brands.List)
	protected.HandleFunc("POST /api/v1/brands", h.Brands.Create)
	protected.HandleFunc("PUT /api/v1/brands/{id}", h.Brands.Update)
	protected.HandleFunc("DELETE /api/v1/brands/{id}", h.Brands.Delete)

	protected.HandleFunc("GET /api/v1/inventory", h.Inventory.List)
	protected.HandleFunc("POST /api/v1/inventory", h.Inventory.Create)
	protected.HandleFunc("GET /api/v1/inventory/search", h.Inventory.Search)
	protected.HandleFunc("GET /api/v1/inventory/movements", h.Inventory.Movements)
	protected.HandleFunc("GET /api/v1/inventory/{id}", h.Inventory.Get)
	protected.HandleFunc("PUT /api/v1/inventory/{id}", h.Inventory.Update)
	protected.HandleFunc("DELETE /api/v1/inventory/{id}", h.Inventory.Delete)
	protected.HandleFunc("POST /api/v1/inventory/{id}/adjust", h.Inventory.Adjust)

	protected.HandleFunc("GET /api/v1/recipes", h.Recipes.List)
	protected.HandleFunc("POST /api/v1/recipes", h.Recipes.Create)
	protected.HandleFunc("GET /api/v1/recipes/search", h.Recipes.Search)
	protected.HandleFunc("GET /api/v1/recipes/pending-dishes", h.Recipes.PendingDishes)
	protected.HandleFunc("GET /api/v1/recipes/{id}", h.Recipes.Get)
	protected.HandleFunc("PUT /api/v1/recipes/{id}", h.Recipes.Update)
	protected.HandleFunc("DELETE /api/v1/recipes/{id}", h.Recipes.Delete)

	protected.HandleFunc("GET /api/v1/plans", h.Plans.List)
	protected.HandleFunc("POST /api/v1/plans", h.Plans.Create)
	protected.HandleFunc("GET /api/v1/plans/{id}", h.Plans.Get)
	protected.HandleFunc("PUT /api/v1/plans/{id}", h.Plans.Update)
	protected.HandleFunc("DELETE /api/v1/plans/{id}", h.Plans.Delete)
	protected.HandleFunc("POST /api/v1/plans/{id}/approve", h.Plans.Approve)
	protected.HandleFunc("GET /api/v1/plans/{id}/missing-recipes", h.Plans.MissingRecipes)
	protected.HandleFunc("POST /api/v1/plans/{id}/consume", h.Plans.Consume)

	protected.HandleFunc("GET /api/v1/forecast", h.Forecast.Get)

	protected.HandleFunc("GET /api/v1/procurements", h.Procurement.Queue)
	protected.HandleFunc("POST /api/v1/procurements", h.Procurement.CreateRequest)
	protected.HandleFunc("DELETE /api/v1/procurements/{id}", h.Procurement.DeleteRequest)
	protected.HandleFunc("POST /api/v1/orders/draft", h.Procurement.DraftOrder)
	protected.HandleFunc("GET /api/v1/orders", h.Procurement.ListOrders)
	protected.HandleFunc("POST /api/v1/orders", h.Procurement.FinalizeOrder)
	protected.HandleFunc("GET /api/v1/orders/{id}", h.Procurement.GetOrder)
	protected.HandleFunc("POST /api/v1/orders/{id}/receive", h.Procurement.ReceiveOrder)

	protected.HandleFunc("GET /api/v1/vendors", h.Vendors.List)
	protected.HandleFunc("POST /api/v1/vendors", h.Vendors.Create)
	protected.HandleFunc("GET /api/v1/vendors/market-analysis", h.Vendors.MarketAnalysis)
	protected.HandleFunc("GET /api/v1/vendors/{id}", h.Vendors.Get)
	protected.HandleFunc("PUT /api/v1/vendors/{id}", h.Vendors.Update)
	protected.HandleFunc("DELETE /api/v1/vendors/{id}", h.Vendors.Delete)
	protected.HandleFunc("PUT /api/v1/vendors/{id}/quotes", h.Vendors.SetQuotes)

	protected.HandleFunc("POST /api/v1/extract/price-list", h.Extraction.ImportPriceList)
	protected.HandleFunc("POST /api/v1/extract/recipe", h.Extraction.ImportRecipe)

	protected.HandleFunc("GET /api/v1/events", h.Events.Stream)

	mux.Handle("/api/v1/", Authenticate(tokens, protected))

	return RequestLogger(log, mux)
}
