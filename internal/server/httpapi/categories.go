package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func toCategory(c *models.Category) apiv1.Category {
	return apiv1.Category{
		ID:       c.ID,
		ClientID: c.ClientID,
		Name:     c.Name,
		Color:    c.Color,
		Type:     c.Type,
	}
}

func fromCategoryRequest(req apiv1.CategoryRequest) *models.Category {
	return &models.Category{
		ClientID: req.ClientID,
		Name:     req.Name,
		Color:    req.Color,
		Type:     req.Type,
	}
}

// userID is set by bearerAuth for every protected route.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, common.ErrorUnauthorized)
	}
	return id, ok
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.categories.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]apiv1.Category, 0, len(items))
	for i := range items {
		out = append(out, toCategory(&items[i]))
	}
	writeOK(w, r, h.logger, http.StatusOK, out)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req apiv1.CategoryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.categories.Create(r.Context(), userID, fromCategoryRequest(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK(w, r, h.logger, http.StatusCreated, apiv1.Created{ID: c.ID})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req apiv1.CategoryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.categories.Update(r.Context(), userID, chi.URLParam(r, "id"), fromCategoryRequest(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK(w, r, h.logger, http.StatusOK, toCategory(c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeOK[any](w, r, h.logger, http.StatusOK, nil)
}
