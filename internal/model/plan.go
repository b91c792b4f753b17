package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PlanDateLayout is the wire format for plan dates.
const PlanDateLayout = "2006-01-02"

type DishDetail struct {
	Name         string  `json:"name"`
	AmountCooked float64 `json:"amount_cooked"`
}

type Meal struct {
	MealType    string       `json:"meal_type"`
	Dishes      []string     `json:"dishes"`
	DishDetails []DishDetail `json:"dish_details"`
}

// Meals is stored as a JSONB column.
type Meals []Meal

func (m Meals) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *Meals) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for Meals: %T", src)
	}
}

// Headcounts maps named attendance buckets to counts, stored as JSONB.
type Headcounts map[string]int

func (h Headcounts) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(Headcounts{})
	}
	return json.Marshal(h)
}

func (h *Headcounts) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for Headcounts: %T", src)
	}
}

type ProductionPlan struct {
	BaseModel
	Date       time.Time  `db:"plan_date" json:"date"`
	Meals      Meals      `db:"meals" json:"meals"`
	Headcounts Headcounts `db:"headcounts" json:"headcounts"`
	IsApproved bool       `db:"is_approved" json:"is_approved"`
	// IsConsumed flips true exactly once, when inventory has been deducted.
	IsConsumed bool `db:"is_consumed" json:"is_consumed"`
}

// DishNames returns every dish across all meals, in plan order.
func (p *ProductionPlan) DishNames() []string {
	var names []string
	for _, meal := range p.Meals {
		names = append(names, meal.Dishes...)
	}
	return names
}
