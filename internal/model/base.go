package model

import (
	"strings"
	"time"
)

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NormalizeKey is the join rule for every name-based lookup in the system:
// dish → recipe, usage → inventory item, PO line → inventory item.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
