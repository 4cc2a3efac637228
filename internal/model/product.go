package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the lifecycle status of a product. It is orthogonal to
// soft deletion: an archived product is still listed, a deleted one is not.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Validate implements the enum contract used by pkg/validator.
func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return nil
	}
	return fmt.Errorf("invalid product status: %s", s)
}

type Product struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	CategoryID  *uuid.UUID    `json:"category_id"`
	Status      ProductStatus `json:"status"`
	DeletedAt   *time.Time    `json:"deleted_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProductDetail is a product joined with its category name and its full
// variant list in creation order.
type ProductDetail struct {
	Product
	CategoryName *string   `json:"category_name"`
	Variants     []Variant `json:"variants"`
}

// ProductSummary is a listing row: the product annotated with its resolved
// category name and variant aggregates. MinPriceCents and MaxPriceCents are
// nil when no variants join; TotalInventory defaults to 0.
type ProductSummary struct {
	Product
	CategoryName   *string `json:"category_name"`
	VariantCount   int     `json:"variant_count"`
	MinPriceCents  *int64  `json:"min_price_cents"`
	MaxPriceCents  *int64  `json:"max_price_cents"`
	TotalInventory int64   `json:"total_inventory"`
}
