package dto

type ItemFilters struct {
	Category string
	Status   string
	// LowStock filters items with quantity <= reorder_level, the shortage rule.
	LowStock bool
	Page     int
	PageSize int
}

type MovementFilters struct {
	ItemID       string
	MovementType string
	Page         int
	PageSize     int
}
