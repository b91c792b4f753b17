package dto

type RecipeFilters struct {
	Page     int
	PageSize int
}
