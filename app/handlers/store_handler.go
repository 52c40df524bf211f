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

type StoreHandler struct {
	storeRepo repositories.StoreRepository
	render    *render.Render
	log       *zap.SugaredLogger
}

func NewStoreHandler(storeRepo repositories.StoreRepository, rnd *render.Render, log *zap.SugaredLogger) *StoreHandler {
	return &StoreHandler{
		storeRepo: storeRepo,
		render:    rnd,
		log:       log,
	}
}

type storeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Country     string `json:"country"`
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.storeRepo.GetStores(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	store, err := h.storeRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if store == nil {
		writeError(h.render, w, services.ErrStoreNotFound)
		return
	}
	h.render.JSON(w, http.StatusOK, store)
}

// Create opens a store owned by the session user. A user has exactly
// one store.
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := helpers.UserIDFromContext(r.Context())

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	existing, err := h.storeRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if existing != nil {
		h.render.JSON(w, http.StatusConflict, errorResponse{Error: "user already owns a store"})
		return
	}

	store := &models.Store{
		Name:        req.Name,
		Description: req.Description,
		Country:     req.Country,
		UserID:      userID,
	}
	if err := h.storeRepo.Create(r.Context(), store); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, store)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	store, err := h.storeRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if store == nil {
		writeError(h.render, w, services.ErrStoreNotFound)
		return
	}
	if store.UserID != helpers.UserIDFromContext(r.Context()) {
		writeForbidden(h.render, w)
		return
	}

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	store.Name = req.Name
	store.Description = req.Description
	store.Country = req.Country
	if err := h.storeRepo.Update(r.Context(), store); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, store)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	store, err := h.storeRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if store == nil {
		writeError(h.render, w, services.ErrStoreNotFound)
		return
	}
	if store.UserID != helpers.UserIDFromContext(r.Context()) {
		writeForbidden(h.render, w)
		return
	}

	if err := h.storeRepo.Delete(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
