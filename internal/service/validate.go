package service

import (
	"strings"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/model"
)

// Validation is fail-fast: the first violation aborts with a single error
// naming the field (and variant index) that failed. The functions also
// normalize the params in place: strings are trimmed and defaults applied,
// so everything downstream works with canonical values.

func validateCreateProduct(params *CreateProductParams) error {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return apperr.InvalidInput("name must be a non-empty string")
	}

	if params.Status == nil {
		status := model.ProductStatusActive
		params.Status = &status
	} else if err := params.Status.Validate(); err != nil {
		return apperr.InvalidInput("status must be one of active, draft, archived")
	}

	if len(params.Variants) == 0 {
		return apperr.InvalidInput("variants must be a non-empty array")
	}

	for i := range params.Variants {
		if err := validateCreateVariant(&params.Variants[i], i); err != nil {
			return err
		}
	}

	return nil
}

func validateCreateVariant(params *CreateVariantParams, index int) error {
	params.SKU = strings.TrimSpace(params.SKU)
	if params.SKU == "" {
		return apperr.InvalidInput("variants[%d].sku must be a non-empty string", index)
	}

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return apperr.InvalidInput("variants[%d].name must be a non-empty string", index)
	}

	if params.PriceCents != nil && *params.PriceCents < 0 {
		return apperr.InvalidInput("variants[%d].price_cents must not be negative", index)
	}

	if params.InventoryCount != nil && *params.InventoryCount < 0 {
		return apperr.InvalidInput("variants[%d].inventory_count must not be negative", index)
	}

	return nil
}

func validateUpdateProduct(params *UpdateProductParams) error {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return apperr.InvalidInput("name must be a non-empty string")
		}
		params.Name = &trimmed
	}

	if params.Status != nil {
		if err := params.Status.Validate(); err != nil {
			return apperr.InvalidInput("status must be one of active, draft, archived")
		}
	}

	return nil
}

// validateUpdateVariant checks only the supplied fields. An update carrying
// zero recognized fields is rejected outright.
func validateUpdateVariant(params *UpdateVariantParams) error {
	if params.SKU == nil && params.Name == nil && params.PriceCents == nil && params.InventoryCount == nil {
		return apperr.NoFieldsToUpdateErr
	}

	if params.SKU != nil {
		trimmed := strings.TrimSpace(*params.SKU)
		if trimmed == "" {
			return apperr.InvalidInput("sku must be a non-empty string")
		}
		params.SKU = &trimmed
	}

	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return apperr.InvalidInput("name must be a non-empty string")
		}
		params.Name = &trimmed
	}

	if params.PriceCents != nil && *params.PriceCents < 0 {
		return apperr.InvalidInput("price_cents must not be negative")
	}

	if params.InventoryCount != nil && *params.InventoryCount < 0 {
		return apperr.InvalidInput("inventory_count must not be negative")
	}

	return nil
}
