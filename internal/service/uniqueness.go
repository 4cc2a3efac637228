package service

import (
	"context"
	"fmt"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/repository"
)

// checkBatchSKUs rejects a create request whose variants repeat a SKU.
// SKUs are already trimmed by validation; matching is exact and
// case-sensitive. Runs before any database lookup: a request that could
// never succeed should not cost a round trip and deserves the clearer error.
func checkBatchSKUs(variants []CreateVariantParams) error {
	seen := make(map[string]struct{}, len(variants))
	for i, variant := range variants {
		if _, ok := seen[variant.SKU]; ok {
			return apperr.InvalidInput("variants[%d].sku %q is duplicated within the request", i, variant.SKU)
		}
		seen[variant.SKU] = struct{}{}
	}

	return nil
}

// checkPersistedSKUs fails with a conflict when any candidate SKU already
// exists in storage. This is the friendly pre-check; the unique index on
// variants.sku remains the authoritative layer during the write.
func checkPersistedSKUs(ctx context.Context, variantRepo repository.VariantRepository, skus []string) error {
	for _, sku := range skus {
		exists, err := variantRepo.SKUExists(ctx, sku)
		if err != nil {
			return fmt.Errorf("check sku %q: %w", sku, err)
		}
		if exists {
			return apperr.SKUConflictErr.WithMsg("a variant with sku %q already exists", sku)
		}
	}

	return nil
}
