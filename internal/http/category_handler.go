package http

import (
	"net/http"

	"github.com/minhhoangvu/catalog-service/internal/service"
)

type categoryHandler struct {
	categorySvc service.CategoryService
	rp          responder
}

func newCategoryHandler(categorySvc service.CategoryService, rp responder) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
		rp:          rp,
	}
}

func (h *categoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, categories)
}

func (h *categoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "categoryID")
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	category, err := h.categorySvc.GetCategory(r.Context(), id)
	if err != nil {
		h.rp.writeError(w, r, err)
		return
	}

	h.rp.writeJSON(w, r, http.StatusOK, category)
}
