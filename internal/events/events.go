package events

// Collection names mirror the backing store collections the SPA subscribes to.
const (
	CollectionInventory    = "inventory"
	CollectionRecipes      = "recipes"
	CollectionPlans        = "productionPlans"
	CollectionVendors      = "vendors"
	CollectionOrders       = "purchaseOrders"
	CollectionProcurements = "procurements"
	CollectionBrands       = "brands"
	CollectionUsers        = "users"
	CollectionSettings     = "settings"
)
