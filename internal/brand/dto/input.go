package dto

type CreateBrandInput struct {
	Name string `json:"name"`
}

type UpdateBrandInput struct {
	ID       string `json:"-"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
