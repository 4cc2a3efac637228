package model

import (
	"github.com/google/uuid"
)

// Category groups products. Categories are managed outside this service and
// never deleted by it; the core only reads them.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategorySummary is a category annotated with the number of non-deleted
// products referencing it.
type CategorySummary struct {
	Category
	ProductCount int `json:"product_count"`
}
