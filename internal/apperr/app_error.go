package apperr

import "github.com/minhhoangvu/catalog-service/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	InvalidInputCode    = "INVALID_INPUT"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	ProductNotFoundErr  = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	VariantNotFoundErr  = zerror.NewNotFound("VARIANT_NOT_FOUND", "variant not found")
	CategoryNotFoundErr = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")

	// SKUConflictErr covers both the pre-write check and a unique violation
	// raised by the store inside the atomic unit.
	SKUConflictErr = zerror.NewConflict("VARIANT_SKU_CONFLICT", "a variant with this sku already exists")

	CategoryNotExistsErr = zerror.NewBadRequest("CATEGORY_NOT_EXISTS", "category_id does not reference an existing category")
	LastVariantErr       = zerror.NewBadRequest("VARIANT_LAST_REMAINING", "cannot delete the last remaining variant of a product")
	NoFieldsToUpdateErr  = zerror.NewBadRequest("NO_FIELDS_TO_UPDATE", "no fields to update")

	InternalErr = zerror.NewInternalServerError("INTERNAL_ERROR", "an internal error occurred")
)

// InvalidInput builds a field-specific invalid input error. The message
// names the offending field (and variant index where relevant) so clients
// can fix the request.
func InvalidInput(format string, args ...any) zerror.ZError {
	return zerror.NewBadRequest(InvalidInputCode, "invalid input").WithMsg(format, args...)
}
