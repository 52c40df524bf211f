package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopapp-dev/shopapp/app/helpers"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ImageHandler struct {
	imageSvc   *services.ImageService
	authorizer *services.OwnershipAuthorizer
	render     *render.Render
	log        *zap.SugaredLogger
}

func NewImageHandler(imageSvc *services.ImageService, authorizer *services.OwnershipAuthorizer, rnd *render.Render, log *zap.SugaredLogger) *ImageHandler {
	return &ImageHandler{
		imageSvc:   imageSvc,
		authorizer: authorizer,
		render:     rnd,
		log:        log,
	}
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid image id"})
		return
	}

	image, err := h.imageSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, image)
}

func (h *ImageHandler) GetByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	image, err := h.imageSvc.GetByProduct(r.Context(), productID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, image)
}

func (h *ImageHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	images, err := h.imageSvc.ListByProduct(r.Context(), productID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if len(images) == 0 {
		h.render.JSON(w, http.StatusNotFound, errorResponse{Error: "no images for product"})
		return
	}
	h.render.JSON(w, http.StatusOK, images)
}

func (h *ImageHandler) ListByProductIDs(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query()["proId"]
	productIDs := make([]uint, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id: " + v})
			return
		}
		productIDs = append(productIDs, uint(id))
	}
	if len(productIDs) == 0 {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "no product ids given"})
		return
	}

	images, err := h.imageSvc.ListByProductIDs(r.Context(), productIDs)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if len(images) == 0 {
		h.render.JSON(w, http.StatusNotFound, errorResponse{Error: "no images for products"})
		return
	}
	h.render.JSON(w, http.StatusOK, images)
}

func (h *ImageHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	image, err := h.imageSvc.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, image)
}

func (h *ImageHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in services.ImageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(in); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	image, err := h.imageSvc.Add(r.Context(), in)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, image)
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid image id"})
		return
	}

	image, err := h.imageSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if !h.authorize(w, r, image) {
		return
	}

	var in services.ImageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(in); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	updated, err := h.imageSvc.Update(r.Context(), id, in)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, updated)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid image id"})
		return
	}

	image, err := h.imageSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if !h.authorize(w, r, image) {
		return
	}

	if err := h.imageSvc.Delete(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// authorize runs the ownership check for the session identity. It
// writes the forbidden response itself and reports whether the caller
// may proceed.
func (h *ImageHandler) authorize(w http.ResponseWriter, r *http.Request, resource services.OwnedResource) bool {
	userID := helpers.UserIDFromContext(r.Context())

	allowed, err := h.authorizer.CanMutate(r.Context(), userID, resource)
	if err != nil {
		writeError(h.render, w, err)
		return false
	}
	if !allowed {
		writeForbidden(h.render, w)
		return false
	}
	return true
}
