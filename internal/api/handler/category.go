// internal/api/handler/category.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// CategoryHandler handles HTTP requests for category management.
type CategoryHandler struct {
	base
	service service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		base:    base{logger: logger},
		service: svc,
	}
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

// Create handles the create-category request.
// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	category, err := h.service.Create(r.Context(), userID, req.Name, req.Icon, domain.TransactionType(req.Type))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, category)
}

// Delete handles the delete-category request.
// DELETE /categories/{name}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if err := h.service.Delete(r.Context(), userID, name); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// List handles the list-categories request.
// GET /categories?type=income|expense
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var catType *domain.TransactionType
	if v := r.URL.Query().Get("type"); v != "" {
		t := domain.TransactionType(v)
		catType = &t
	}

	categories, err := h.service.List(r.Context(), userID, catType)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": categories})
}
