package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/event"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/repository"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
)

type ProductService interface {
	// CreateProduct validates the payload, enforces SKU uniqueness and
	// category existence, then persists the product and all of its variants
	// as one atomic unit.
	CreateProduct(ctx context.Context, params CreateProductParams) (model.ProductDetail, error)

	// GetProduct fetches a product by id regardless of soft-delete state,
	// with its category name and ordered variant list.
	GetProduct(ctx context.Context, id uuid.UUID) (model.ProductDetail, error)

	// ListProducts returns non-deleted products with variant aggregates,
	// newest first. Filters combine conjunctively.
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.ProductSummary, error)

	// UpdateProduct merges the supplied fields into the product. Absent
	// fields keep their persisted values; updated_at is always refreshed.
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.ProductDetail, error)

	// DeleteProduct marks the product deleted. The row is never removed.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	categoryRepo  repository.CategoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		categoryRepo:  categoryRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.ProductDetail, error) {
	if err := validateCreateProduct(&params); err != nil {
		return model.ProductDetail{}, err
	}

	if err := checkBatchSKUs(params.Variants); err != nil {
		return model.ProductDetail{}, err
	}

	skus := make([]string, 0, len(params.Variants))
	for _, variant := range params.Variants {
		skus = append(skus, variant.SKU)
	}
	if err := checkPersistedSKUs(ctx, s.variantRepo, skus); err != nil {
		return model.ProductDetail{}, err
	}

	var categoryName *string
	if params.CategoryID != nil {
		category, err := s.categoryRepo.GetCategory(ctx, *params.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.ProductDetail{}, apperr.CategoryNotExistsErr
			}
			return model.ProductDetail{}, fmt.Errorf("resolve category: %w", err)
		}
		categoryName = &category.Name
	}

	productID, err := uuid.NewV7()
	if err != nil {
		return model.ProductDetail{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:          productID,
		Name:        params.Name,
		Description: params.Description,
		CategoryID:  params.CategoryID,
		Status:      *params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	variants := make([]model.Variant, 0, len(params.Variants))
	for i, vp := range params.Variants {
		variantID, err := uuid.NewV7()
		if err != nil {
			return model.ProductDetail{}, fmt.Errorf("generate uuid v7: %w", err)
		}

		var priceCents int64
		if vp.PriceCents != nil {
			priceCents = *vp.PriceCents
		}
		var inventoryCount int
		if vp.InventoryCount != nil {
			inventoryCount = *vp.InventoryCount
		}

		// Staggered creation timestamps preserve request order when the
		// variant list is read back sorted by created_at.
		variants = append(variants, model.Variant{
			ID:             variantID,
			ProductID:      productID,
			SKU:            vp.SKU,
			Name:           vp.Name,
			PriceCents:     priceCents,
			InventoryCount: inventoryCount,
			CreatedAt:      now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt:      now,
		})
	}

	ev := event.ProductCreatedEvent{
		ProductID:    product.ID.String(),
		Name:         product.Name,
		Status:       string(product.Status),
		VariantSKUs:  skus,
		VariantCount: len(variants),
	}
	if product.CategoryID != nil {
		categoryID := product.CategoryID.String()
		ev.CategoryID = &categoryID
	}

	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		if err := s.productRepo.
			WithDB(txDB).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.variantRepo.
			WithDB(txDB).
			CreateVariants(ctx, variants); err != nil {
			return fmt.Errorf("variant repository create variants: %w", err)
		}

		if err := recordEvent(ctx, s.outboxMsgRepo.WithDB(txDB),
			event.TopicProductCreated, product.ID.String(), ev); err != nil {
			return err
		}

		return nil
	}); err != nil {
		// The pre-check is racy against concurrent writers; a unique
		// violation raised by the store during the unit is authoritative
		// and reported as the same conflict.
		if db.IsUniqueViolation(err) {
			return model.ProductDetail{}, apperr.SKUConflictErr.WrapParent(err)
		}
		return model.ProductDetail{}, fmt.Errorf("db with tx: %w", err)
	}

	return model.ProductDetail{
		Product:      product,
		CategoryName: categoryName,
		Variants:     variants,
	}, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.ProductDetail, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ProductDetail{}, apperr.ProductNotFoundErr
		}
		return model.ProductDetail{}, fmt.Errorf("product repository get product: %w", err)
	}

	variants, err := s.variantRepo.ListVariantsByProduct(ctx, id)
	if err != nil {
		return model.ProductDetail{}, fmt.Errorf("variant repository list variants: %w", err)
	}

	return model.ProductDetail{
		Product:      product.Product,
		CategoryName: product.CategoryName,
		Variants:     variants,
	}, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.ProductSummary, error) {
	summaries, err := s.productRepo.ListProductSummaries(ctx, repository.ListProductsParams{
		Search:     params.Search,
		CategoryID: params.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("product repository list product summaries: %w", err)
	}

	return summaries, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.ProductDetail, error) {
	if err := validateUpdateProduct(&params); err != nil {
		return model.ProductDetail{}, err
	}

	if params.CategoryID != nil {
		exists, err := s.categoryRepo.CategoryExists(ctx, *params.CategoryID)
		if err != nil {
			return model.ProductDetail{}, fmt.Errorf("check category exists: %w", err)
		}
		if !exists {
			return model.ProductDetail{}, apperr.CategoryNotExistsErr
		}
	}

	var updated repository.ProductWithCategory
	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		var err error
		updated, err = s.productRepo.
			WithDB(txDB).
			UpdateProduct(ctx, id, repository.UpdateProductParams{
				Name:        params.Name,
				Description: params.Description,
				CategoryID:  params.CategoryID,
				Status:      params.Status,
				UpdatedAt:   time.Now(),
			})
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		return recordEvent(ctx, s.outboxMsgRepo.WithDB(txDB),
			event.TopicProductUpdated, id.String(), event.ProductUpdatedEvent{
				ProductID: id.String(),
				Name:      updated.Name,
				Status:    string(updated.Status),
			})
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ProductDetail{}, apperr.ProductNotFoundErr
		}
		return model.ProductDetail{}, fmt.Errorf("db with tx: %w", err)
	}

	variants, err := s.variantRepo.ListVariantsByProduct(ctx, id)
	if err != nil {
		return model.ProductDetail{}, fmt.Errorf("variant repository list variants: %w", err)
	}

	return model.ProductDetail{
		Product:      updated.Product,
		CategoryName: updated.CategoryName,
		Variants:     variants,
	}, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deletedAt := time.Now()

	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		if err := s.productRepo.
			WithDB(txDB).
			SoftDeleteProduct(ctx, id, deletedAt); err != nil {
			return fmt.Errorf("product repository soft delete product: %w", err)
		}

		return recordEvent(ctx, s.outboxMsgRepo.WithDB(txDB),
			event.TopicProductDeleted, id.String(), event.ProductDeletedEvent{
				ProductID: id.String(),
				DeletedAt: deletedAt,
			})
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ProductNotFoundErr
		}
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}
