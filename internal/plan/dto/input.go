package dto

import "github.com/rasoihq/kitchen-service/internal/model"

type CreatePlanInput struct {
	Date       string           `json:"date"`
	Meals      model.Meals      `json:"meals"`
	Headcounts model.Headcounts `json:"headcounts"`
}

type UpdatePlanInput struct {
	ID         string           `json:"-"`
	Date       string           `json:"date"`
	Meals      model.Meals      `json:"meals"`
	Headcounts model.Headcounts `json:"headcounts"`
}
