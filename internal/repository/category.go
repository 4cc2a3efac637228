package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListCategorySummaries(ctx context.Context) ([]model.CategorySummary, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error) {
	var category model.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("select category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}

	return exists, nil
}

// ListCategorySummaries returns every category with the number of
// non-deleted products attached to it.
func (r categoryRepository) ListCategorySummaries(ctx context.Context) ([]model.CategorySummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list category summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.CategorySummary, 0)
	for rows.Next() {
		var s model.CategorySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category summaries: %w", err)
	}

	return summaries, nil
}
