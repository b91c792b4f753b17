package dto

type PlanFilters struct {
	From     string
	To       string
	Approved *bool
	Consumed *bool
	Page     int
	PageSize int
}
