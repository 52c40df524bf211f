package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopapp-dev/shopapp/app/helpers"
	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryRepo repositories.CategoryRepository
	render       *render.Render
	log          *zap.SugaredLogger
}

func NewCategoryHandler(categoryRepo repositories.CategoryRepository, rnd *render.Render, log *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo: categoryRepo,
		render:       rnd,
		log:          log,
	}
}

type categoryRequest struct {
	CategoryName string `json:"category_name" validate:"required"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetCategories(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if category == nil {
		writeError(h.render, w, services.ErrCategoryNotFound)
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	category := &models.ProductCategory{CategoryName: req.CategoryName}
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if category == nil {
		writeError(h.render, w, services.ErrCategoryNotFound)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	category.CategoryName = req.CategoryName
	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
