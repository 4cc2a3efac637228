package http

import (
	"net/http"

	"github.com/minhhoangvu/catalog-service/internal/service"
)

type variantHandler struct {
	variantSvc service.VariantService
	rp         responder
}

func newVariantHandler(variantSvc service.VariantService, rp responder) *variantHandler {
	return &variantHandler{
		variantSvc: variantSvc,
		rp:         rp,
	}
}

type updateVariantRequest struct {
	SKU            *string `json:"sku"`
	Name           *string `json:"name"`
	PriceCents     *int64  `json:"price_cents"`
	InventoryCount *int    `json:"inventory_count"`
}

func (h *variantHandler) getVariant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "variantID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	variant, err := h.variantSvc.GetVariant(r.Context(), id)
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, variant)
}

func (h *variantHandler) updateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "variantID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	var req updateVariantRequest
	if err := decodeJSON(r, &req, nil); err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	variant, err := h.variantSvc.UpdateVariant(r.Context(), id, service.UpdateVariantParams{
		SKU:            req.SKU,
		Name:           req.Name,
		PriceCents:     req.PriceCents,
		InventoryCount: req.InventoryCount,
	})
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, variant)
}

func (h *variantHandler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "variantID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	if err := h.variantSvc.DeleteVariant(r.Context(), id); err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusNoContent, nil)
}
