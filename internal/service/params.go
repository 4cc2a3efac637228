package service

import (
	"github.com/google/uuid"

	"github.com/minhhoangvu/catalog-service/internal/model"
)

// CreateVariantParams is one variant of a product create request.
// PriceCents and InventoryCount default to 0 when absent.
type CreateVariantParams struct {
	SKU            string
	Name           string
	PriceCents     *int64
	InventoryCount *int
}

type CreateProductParams struct {
	Name        string
	Description *string
	CategoryID  *uuid.UUID
	Status      *model.ProductStatus
	Variants    []CreateVariantParams
}

// UpdateProductParams is a partial field set. Nil means "leave unchanged".
type UpdateProductParams struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	Status      *model.ProductStatus
}

// UpdateVariantParams is a partial field set. Nil means "leave unchanged".
type UpdateVariantParams struct {
	SKU            *string
	Name           *string
	PriceCents     *int64
	InventoryCount *int
}

type ListProductsParams struct {
	Search     *string
	CategoryID *uuid.UUID
}
