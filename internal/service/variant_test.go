package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/service"
	"github.com/minhhoangvu/catalog-service/pkg/ptr"
	"github.com/minhhoangvu/catalog-service/pkg/zerror"
)

func seedProduct(t *testing.T, f *fixture, skus ...string) model.ProductDetail {
	t.Helper()

	variants := make([]service.CreateVariantParams, 0, len(skus))
	for _, sku := range skus {
		variants = append(variants, service.CreateVariantParams{SKU: sku, Name: "Variant " + sku})
	}

	detail, err := f.productSvc.CreateProduct(context.Background(), service.CreateProductParams{
		Name:     "Trail Shoe",
		Variants: variants,
	})
	require.NoError(t, err)
	return detail
}

func TestGetVariant(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return variant by id", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		variant, err := f.variantSvc.GetVariant(ctx, product.Variants[0].ID)

		require.NoError(t, err)
		assert.Equal(t, "SHOE-42", variant.SKU)
		assert.Equal(t, product.ID, variant.ProductID)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newFixture()

		_, err := f.variantSvc.GetVariant(ctx, uuid.New())

		assertZError(t, err, zerror.StatusNotFound, "VARIANT_NOT_FOUND")
	})
}

func TestUpdateVariant(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge only the supplied fields", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		updated, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			PriceCents: ptr.New(int64(9900)),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(9900), updated.PriceCents)
		assert.Equal(t, "SHOE-42", updated.SKU)
		assert.Equal(t, "Variant SHOE-42", updated.Name)
	})

	t.Run("Should reject a patch with no recognized fields", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		_, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{})

		assertZError(t, err, zerror.StatusBadRequest, "NO_FIELDS_TO_UPDATE")
	})

	t.Run("Should allow re-submitting the current sku", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		updated, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			SKU:  ptr.New("SHOE-42"),
			Name: ptr.New("Size 42 EU"),
		})

		require.NoError(t, err)
		assert.Equal(t, "SHOE-42", updated.SKU)
		assert.Equal(t, "Size 42 EU", updated.Name)
	})

	t.Run("Should report conflict when the new sku belongs to another variant", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42", "SHOE-43")

		_, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			SKU: ptr.New("SHOE-43"),
		})

		assertZError(t, err, zerror.StatusConflict, "VARIANT_SKU_CONFLICT")

		current, getErr := f.variantSvc.GetVariant(ctx, product.Variants[0].ID)
		require.NoError(t, getErr)
		assert.Equal(t, "SHOE-42", current.SKU)
	})

	t.Run("Should report conflict on unique violation during the write", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")
		f.variantRepo.updateErr = uniqueViolation()

		_, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			SKU: ptr.New("SHOE-99"),
		})

		assertZError(t, err, zerror.StatusConflict, "VARIANT_SKU_CONFLICT")
	})

	t.Run("Should reject blank sku", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		_, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			SKU: ptr.New("   "),
		})

		assertZError(t, err, zerror.StatusBadRequest, apperr.InvalidInputCode)
	})

	t.Run("Should reject negative inventory", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42")

		_, err := f.variantSvc.UpdateVariant(ctx, product.Variants[0].ID, service.UpdateVariantParams{
			InventoryCount: ptr.New(-1),
		})

		assertZError(t, err, zerror.StatusBadRequest, apperr.InvalidInputCode)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newFixture()

		_, err := f.variantSvc.UpdateVariant(ctx, uuid.New(), service.UpdateVariantParams{
			Name: ptr.New("Size 42"),
		})

		assertZError(t, err, zerror.StatusNotFound, "VARIANT_NOT_FOUND")
	})
}

func TestDeleteVariant(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete a variant when others remain", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42", "SHOE-43")

		err := f.variantSvc.DeleteVariant(ctx, product.Variants[0].ID)

		require.NoError(t, err)
		assert.Len(t, f.store.variants, 1)

		_, err = f.variantSvc.GetVariant(ctx, product.Variants[0].ID)
		assertZError(t, err, zerror.StatusNotFound, "VARIANT_NOT_FOUND")
	})

	t.Run("Should refuse deleting the last variant of a product", func(t *testing.T) {
		f := newFixture()
		product := seedProduct(t, f, "SHOE-42", "SHOE-43")

		require.NoError(t, f.variantSvc.DeleteVariant(ctx, product.Variants[0].ID))

		err := f.variantSvc.DeleteVariant(ctx, product.Variants[1].ID)

		assertZError(t, err, zerror.StatusBadRequest, "VARIANT_LAST_REMAINING")

		variant, getErr := f.variantSvc.GetVariant(ctx, product.Variants[1].ID)
		require.NoError(t, getErr)
		assert.Equal(t, "SHOE-43", variant.SKU)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newFixture()

		err := f.variantSvc.DeleteVariant(ctx, uuid.New())

		assertZError(t, err, zerror.StatusNotFound, "VARIANT_NOT_FOUND")
	})
}
