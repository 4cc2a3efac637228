package event

import "time"

const (
	TopicProductCreated = "catalog.product.created"
	TopicProductUpdated = "catalog.product.updated"
	TopicProductDeleted = "catalog.product.deleted"
	TopicVariantUpdated = "catalog.variant.updated"
	TopicVariantDeleted = "catalog.variant.deleted"
)

// ProductCreatedEvent is emitted once per successful product create, after
// the product and all of its variants are committed.
type ProductCreatedEvent struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	CategoryID   *string  `json:"category_id"`
	VariantSKUs  []string `json:"variant_skus"`
	VariantCount int      `json:"variant_count"`
}

type ProductUpdatedEvent struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

type ProductDeletedEvent struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type VariantUpdatedEvent struct {
	VariantID      string `json:"variant_id"`
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	PriceCents     int64  `json:"price_cents"`
	InventoryCount int    `json:"inventory_count"`
}

type VariantDeletedEvent struct {
	VariantID string `json:"variant_id"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
}
