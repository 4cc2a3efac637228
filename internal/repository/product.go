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

// ProductWithCategory is a product row joined with its resolved category
// name (nil when uncategorised).
type ProductWithCategory struct {
	model.Product
	CategoryName *string
}

// UpdateProductParams carries the partial field set of a product update.
// Nil fields are left untouched; updated_at is always refreshed.
type UpdateProductParams struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	Status      *model.ProductStatus
	UpdatedAt   time.Time
}

// ListProductsParams are the optional listing filters. They are combined
// conjunctively; the soft-delete predicate is applied unconditionally.
type ListProductsParams struct {
	Search     *string
	CategoryID *uuid.UUID
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (ProductWithCategory, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (ProductWithCategory, error)
	SoftDeleteProduct(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
	ListProductSummaries(ctx context.Context, params ListProductsParams) ([]model.ProductSummary, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, category_id, status, deleted_at, created_at, updated_at)
		VALUES (@id, @name, @description, @category_id, @status, NULL, @created_at, @updated_at)
	`, pgx.NamedArgs{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"category_id": product.CategoryID,
		"status":      product.Status,
		"created_at":  product.CreatedAt,
		"updated_at":  product.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetProduct fetches a product by id regardless of deleted_at state.
// Soft-deleted products stay reachable by id; only listings hide them.
func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (ProductWithCategory, error) {
	row := r.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.description, p.category_id, p.status,
			p.deleted_at, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)

	product, err := scanProductWithCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductWithCategory{}, ErrNotFound
		}
		return ProductWithCategory{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (ProductWithCategory, error) {
	b := newUpdateBuilder("products")
	if params.Name != nil {
		b.Set("name", *params.Name)
	}
	if params.Description != nil {
		b.Set("description", *params.Description)
	}
	if params.CategoryID != nil {
		b.Set("category_id", *params.CategoryID)
	}
	if params.Status != nil {
		b.Set("status", *params.Status)
	}
	b.Set("updated_at", params.UpdatedAt)

	query, args := b.Build("id", id, "id")

	var updatedID uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductWithCategory{}, ErrNotFound
		}
		return ProductWithCategory{}, fmt.Errorf("update product: %w", err)
	}

	return r.GetProduct(ctx, id)
}

func (r productRepository) SoftDeleteProduct(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) ListProductSummaries(ctx context.Context, params ListProductsParams) ([]model.ProductSummary, error) {
	// The deleted_at predicate is part of the base query, not the filter
	// set, so no filter combination can bypass it.
	query := `
		SELECT p.id, p.name, p.description, p.category_id, p.status,
			p.deleted_at, p.created_at, p.updated_at, c.name,
			COUNT(v.id),
			MIN(v.price_cents),
			MAX(v.price_cents),
			COALESCE(SUM(v.inventory_count), 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN variants v ON v.product_id = p.id
		WHERE p.deleted_at IS NULL`

	args := pgx.NamedArgs{}
	if params.Search != nil {
		query += ` AND (p.name LIKE '%' || @search || '%' OR p.description LIKE '%' || @search || '%')`
		args["search"] = *params.Search
	}
	if params.CategoryID != nil {
		query += ` AND p.category_id = @category_id`
		args["category_id"] = *params.CategoryID
	}

	query += `
		GROUP BY p.id, c.name
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list product summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.ProductSummary, 0)
	for rows.Next() {
		var s model.ProductSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.Status,
			&s.DeletedAt, &s.CreatedAt, &s.UpdatedAt, &s.CategoryName,
			&s.VariantCount, &s.MinPriceCents, &s.MaxPriceCents, &s.TotalInventory,
		); err != nil {
			return nil, fmt.Errorf("scan product summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product summaries: %w", err)
	}

	return summaries, nil
}

func scanProductWithCategory(row pgx.Row) (ProductWithCategory, error) {
	var p ProductWithCategory
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Status,
		&p.DeletedAt, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if err != nil {
		return ProductWithCategory{}, err
	}
	return p, nil
}
