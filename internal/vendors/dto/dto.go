package dto

type VendorFilters struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
