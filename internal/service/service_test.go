package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/repository"
	"github.com/minhhoangvu/catalog-service/internal/service"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
	"github.com/minhhoangvu/catalog-service/pkg/zerror"
)

// catalogStore is an in-memory stand-in for the database. The fake DB
// snapshots it before each transaction and restores it when the
// transaction function fails, so rollback behaviour is observable.
type catalogStore struct {
	products   map[uuid.UUID]model.Product
	categories map[uuid.UUID]model.Category
	variants   map[uuid.UUID]model.Variant
	outbox     []repository.CreateOutboxMsgParams
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		products:   map[uuid.UUID]model.Product{},
		categories: map[uuid.UUID]model.Category{},
		variants:   map[uuid.UUID]model.Variant{},
	}
}

func (s *catalogStore) snapshot() catalogStore {
	snap := catalogStore{
		products:   make(map[uuid.UUID]model.Product, len(s.products)),
		categories: make(map[uuid.UUID]model.Category, len(s.categories)),
		variants:   make(map[uuid.UUID]model.Variant, len(s.variants)),
		outbox:     append([]repository.CreateOutboxMsgParams(nil), s.outbox...),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.variants {
		snap.variants[k] = v
	}
	return snap
}

func (s *catalogStore) restore(snap catalogStore) {
	s.products = snap.products
	s.categories = snap.categories
	s.variants = snap.variants
	s.outbox = snap.outbox
}

type fakeDB struct {
	store *catalogStore
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	snap := f.store.snapshot()
	if err := txFunc(f); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

type fakeProductRepo struct {
	store *catalogStore
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id uuid.UUID) (repository.ProductWithCategory, error) {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ProductWithCategory{}, repository.ErrNotFound
	}
	return repository.ProductWithCategory{
		Product:      product,
		CategoryName: r.categoryName(product.CategoryID),
	}, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, id uuid.UUID, params repository.UpdateProductParams) (repository.ProductWithCategory, error) {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ProductWithCategory{}, repository.ErrNotFound
	}
	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = params.Description
	}
	if params.CategoryID != nil {
		product.CategoryID = params.CategoryID
	}
	if params.Status != nil {
		product.Status = *params.Status
	}
	product.UpdatedAt = params.UpdatedAt
	r.store.products[id] = product
	return repository.ProductWithCategory{
		Product:      product,
		CategoryName: r.categoryName(product.CategoryID),
	}, nil
}

func (r *fakeProductRepo) SoftDeleteProduct(_ context.Context, id uuid.UUID, deletedAt time.Time) error {
	product, ok := r.store.products[id]
	if !ok || product.DeletedAt != nil {
		return repository.ErrNotFound
	}
	product.DeletedAt = &deletedAt
	r.store.products[id] = product
	return nil
}

func (r *fakeProductRepo) ListProductSummaries(_ context.Context, params repository.ListProductsParams) ([]model.ProductSummary, error) {
	summaries := make([]model.ProductSummary, 0)
	for _, product := range r.store.products {
		if product.DeletedAt != nil {
			continue
		}
		if params.Search != nil {
			desc := ""
			if product.Description != nil {
				desc = *product.Description
			}
			if !strings.Contains(product.Name, *params.Search) && !strings.Contains(desc, *params.Search) {
				continue
			}
		}
		if params.CategoryID != nil && (product.CategoryID == nil || *product.CategoryID != *params.CategoryID) {
			continue
		}

		summary := model.ProductSummary{
			Product:      product,
			CategoryName: r.categoryName(product.CategoryID),
		}
		for _, variant := range r.store.variants {
			if variant.ProductID != product.ID {
				continue
			}
			summary.VariantCount++
			summary.TotalInventory += int64(variant.InventoryCount)
			price := variant.PriceCents
			if summary.MinPriceCents == nil || price < *summary.MinPriceCents {
				summary.MinPriceCents = &price
			}
			if summary.MaxPriceCents == nil || price > *summary.MaxPriceCents {
				summary.MaxPriceCents = &price
			}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (r *fakeProductRepo) categoryName(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	category, ok := r.store.categories[*id]
	if !ok {
		return nil
	}
	return &category.Name
}

type fakeVariantRepo struct {
	store *catalogStore

	createErr error
	updateErr error
}

func (r *fakeVariantRepo) WithDB(db.DB) repository.VariantRepository { return r }

func (r *fakeVariantRepo) CreateVariants(_ context.Context, variants []model.Variant) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, variant := range variants {
		r.store.variants[variant.ID] = variant
	}
	return nil
}

func (r *fakeVariantRepo) GetVariant(_ context.Context, id uuid.UUID) (model.Variant, error) {
	variant, ok := r.store.variants[id]
	if !ok {
		return model.Variant{}, repository.ErrNotFound
	}
	return variant, nil
}

func (r *fakeVariantRepo) ListVariantsByProduct(_ context.Context, productID uuid.UUID) ([]model.Variant, error) {
	variants := make([]model.Variant, 0)
	for _, variant := range r.store.variants {
		if variant.ProductID == productID {
			variants = append(variants, variant)
		}
	}
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].CreatedAt.Before(variants[j].CreatedAt)
	})
	return variants, nil
}

func (r *fakeVariantRepo) UpdateVariant(_ context.Context, id uuid.UUID, params repository.UpdateVariantParams) (model.Variant, error) {
	if r.updateErr != nil {
		return model.Variant{}, r.updateErr
	}
	variant, ok := r.store.variants[id]
	if !ok {
		return model.Variant{}, repository.ErrNotFound
	}
	if params.SKU != nil {
		variant.SKU = *params.SKU
	}
	if params.Name != nil {
		variant.Name = *params.Name
	}
	if params.PriceCents != nil {
		variant.PriceCents = *params.PriceCents
	}
	if params.InventoryCount != nil {
		variant.InventoryCount = *params.InventoryCount
	}
	variant.UpdatedAt = params.UpdatedAt
	r.store.variants[id] = variant
	return variant, nil
}

func (r *fakeVariantRepo) DeleteVariant(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.variants[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.variants, id)
	return nil
}

func (r *fakeVariantRepo) CountVariantsByProduct(_ context.Context, productID uuid.UUID) (int, error) {
	count := 0
	for _, variant := range r.store.variants {
		if variant.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *fakeVariantRepo) SKUExists(_ context.Context, sku string) (bool, error) {
	for _, variant := range r.store.variants {
		if variant.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategoryRepo struct {
	store *catalogStore
}

func (r *fakeCategoryRepo) WithDB(db.DB) repository.CategoryRepository { return r }

func (r *fakeCategoryRepo) GetCategory(_ context.Context, id uuid.UUID) (model.Category, error) {
	category, ok := r.store.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) CategoryExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.store.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) ListCategorySummaries(_ context.Context) ([]model.CategorySummary, error) {
	summaries := make([]model.CategorySummary, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		summary := model.CategorySummary{Category: category}
		for _, product := range r.store.products {
			if product.DeletedAt == nil && product.CategoryID != nil && *product.CategoryID == category.ID {
				summary.ProductCount++
			}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

type fakeOutboxMsgRepo struct {
	store *catalogStore
}

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.store.outbox = append(r.store.outbox, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

// fixture wires the services against a shared in-memory store.
type fixture struct {
	store       *catalogStore
	variantRepo *fakeVariantRepo

	productSvc  service.ProductService
	variantSvc  service.VariantService
	categorySvc service.CategoryService
}

func newFixture() *fixture {
	store := newCatalogStore()
	database := &fakeDB{store: store}
	productRepo := &fakeProductRepo{store: store}
	variantRepo := &fakeVariantRepo{store: store}
	categoryRepo := &fakeCategoryRepo{store: store}
	outboxMsgRepo := &fakeOutboxMsgRepo{store: store}

	return &fixture{
		store:       store,
		variantRepo: variantRepo,
		productSvc:  service.NewProductService(database, productRepo, variantRepo, categoryRepo, outboxMsgRepo),
		variantSvc:  service.NewVariantService(database, variantRepo, outboxMsgRepo),
		categorySvc: service.NewCategoryService(categoryRepo),
	}
}

func (f *fixture) seedCategory(t *testing.T, name string) model.Category {
	t.Helper()
	category := model.Category{ID: uuid.New(), Name: name}
	f.store.categories[category.ID] = category
	return category
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "uq_variants_sku"}
}

func assertZError(t *testing.T, err error, status zerror.Status, code string) {
	t.Helper()
	var zerr zerror.ZError
	require.ErrorAs(t, err, &zerr)
	assert.Equal(t, status, zerr.Status())
	assert.Equal(t, code, zerr.Code())
}
