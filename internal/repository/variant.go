package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
)

// UpdateVariantParams carries the partial field set of a variant update.
// Nil fields are left untouched; updated_at is always refreshed.
type UpdateVariantParams struct {
	SKU            *string
	Name           *string
	PriceCents     *int64
	InventoryCount *int
	UpdatedAt      time.Time
}

type VariantRepository interface {
	WithDB(db db.DB) VariantRepository
	CreateVariants(ctx context.Context, variants []model.Variant) error
	GetVariant(ctx context.Context, id uuid.UUID) (model.Variant, error)
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, params UpdateVariantParams) (model.Variant, error)
	DeleteVariant(ctx context.Context, id uuid.UUID) error
	CountVariantsByProduct(ctx context.Context, productID uuid.UUID) (int, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
}

type variantRepository struct {
	db db.DB
}

func NewVariantRepository(db db.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r variantRepository) WithDB(db db.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r variantRepository) CreateVariants(ctx context.Context, variants []model.Variant) error {
	for _, variant := range variants {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO variants (id, product_id, sku, name, price_cents, inventory_count, created_at, updated_at)
			VALUES (@id, @product_id, @sku, @name, @price_cents, @inventory_count, @created_at, @updated_at)
		`, pgx.NamedArgs{
			"id":              variant.ID,
			"product_id":      variant.ProductID,
			"sku":             variant.SKU,
			"name":            variant.Name,
			"price_cents":     variant.PriceCents,
			"inventory_count": variant.InventoryCount,
			"created_at":      variant.CreatedAt,
			"updated_at":      variant.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("insert variant %s: %w", variant.SKU, err)
		}
	}

	return nil
}

func (r variantRepository) GetVariant(ctx context.Context, id uuid.UUID) (model.Variant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, sku, name, price_cents, inventory_count, created_at, updated_at
		FROM variants
		WHERE id = $1
	`, id)

	variant, err := scanVariant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Variant{}, ErrNotFound
		}
		return model.Variant{}, fmt.Errorf("select variant: %w", err)
	}

	return variant, nil
}

func (r variantRepository) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, sku, name, price_cents, inventory_count, created_at, updated_at
		FROM variants
		WHERE product_id = $1
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variants := make([]model.Variant, 0)
	for rows.Next() {
		variant, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, variant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}

	return variants, nil
}

func (r variantRepository) UpdateVariant(ctx context.Context, id uuid.UUID, params UpdateVariantParams) (model.Variant, error) {
	b := newUpdateBuilder("variants")
	if params.SKU != nil {
		b.Set("sku", *params.SKU)
	}
	if params.Name != nil {
		b.Set("name", *params.Name)
	}
	if params.PriceCents != nil {
		b.Set("price_cents", *params.PriceCents)
	}
	if params.InventoryCount != nil {
		b.Set("inventory_count", *params.InventoryCount)
	}
	b.Set("updated_at", params.UpdatedAt)

	query, args := b.Build("id", id,
		"id, product_id, sku, name, price_cents, inventory_count, created_at, updated_at")

	variant, err := scanVariant(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Variant{}, ErrNotFound
		}
		return model.Variant{}, fmt.Errorf("update variant: %w", err)
	}

	return variant, nil
}

func (r variantRepository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r variantRepository) CountVariantsByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM variants WHERE product_id = $1`, productID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count variants: %w", err)
	}

	return count, nil
}

func (r variantRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM variants WHERE sku = $1)`, sku,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sku exists: %w", err)
	}

	return exists, nil
}

func scanVariant(row pgx.Row) (model.Variant, error) {
	var v model.Variant
	err := row.Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name,
		&v.PriceCents, &v.InventoryCount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return model.Variant{}, err
	}
	return v, nil
}
