package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/service"
	"github.com/minhhoangvu/catalog-service/pkg/validator"
)

type productHandler struct {
	productSvc service.ProductService
	validate   validator.Validator
	rp         responder
}

func newProductHandler(productSvc service.ProductService, validate validator.Validator, rp responder) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validate:   validate,
		rp:         rp,
	}
}

type createVariantRequest struct {
	SKU            string `json:"sku" validate:"required"`
	Name           string `json:"name" validate:"required"`
	PriceCents     *int64 `json:"price_cents"`
	InventoryCount *int   `json:"inventory_count"`
}

type createProductRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description *string                `json:"description"`
	CategoryID  *uuid.UUID             `json:"category_id"`
	Status      *model.ProductStatus   `json:"status"`
	Variants    []createVariantRequest `json:"variants" validate:"required,min=1"`
}

type updateProductRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	CategoryID  *uuid.UUID           `json:"category_id"`
	Status      *model.ProductStatus `json:"status"`
}

func (h *productHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req, h.validate); err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	params := service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
		Variants:    make([]service.CreateVariantParams, 0, len(req.Variants)),
	}
	for _, v := range req.Variants {
		params.Variants = append(params.Variants, service.CreateVariantParams{
			SKU:            v.SKU,
			Name:           v.Name,
			PriceCents:     v.PriceCents,
			InventoryCount: v.InventoryCount,
		})
	}

	product, err := h.productSvc.CreateProduct(r.Context(), params)
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusCreated, product)
}

func (h *productHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	var params service.ListProductsParams

	if search := r.URL.Query().Get("search"); search != "" {
		params.Search = &search
	}
	if rawCategoryID := r.URL.Query().Get("category_id"); rawCategoryID != "" {
		categoryID, err := uuid.Parse(rawCategoryID)
		if err != nil {
			h.rp.writeError(w, r, apperr.InvalidInput("category_id must be a valid UUID"))
			return
		}
		params.CategoryID = &categoryID
	}

	products, err := h.productSvc.ListProducts(r.Context(), params)
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, products)
}

func (h *productHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req, nil); err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	})
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusNoContent, nil)
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.UUID{}, apperr.InvalidInput("%s must be a valid UUID", name)
	}
	return id, nil
}
