package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopapp-dev/shopapp/app/helpers"
	"github.com/shopapp-dev/shopapp/app/models"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/shopapp-dev/shopapp/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalogSvc *services.CatalogService
	render     *render.Render
	log        *zap.SugaredLogger
}

func NewProductHandler(catalogSvc *services.CatalogService, rnd *render.Render, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{
		catalogSvc: catalogSvc,
		render:     rnd,
		log:        log,
	}
}

type productRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	ProductCategoryID uint            `json:"product_category_id" validate:"required"`
	StoreID           uint            `json:"store_id" validate:"required"`
}

type productResponse struct {
	*models.Product
	PriceDisplay string `json:"price_display"`
}

func newProductResponse(p *models.Product) productResponse {
	return productResponse{
		Product:      p,
		PriceDisplay: format.Money(p.Price),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ListProducts(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	h.render.JSON(w, http.StatusOK, out)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.catalogSvc.GetProduct(r.Context(), id)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, newProductResponse(product))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	product := &models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ProductCategoryID: req.ProductCategoryID,
		StoreID:           req.StoreID,
	}
	if err := h.catalogSvc.CreateProduct(r.Context(), product); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, newProductResponse(product))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	product := &models.Product{
		ID:                id,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ProductCategoryID: req.ProductCategoryID,
		StoreID:           req.StoreID,
	}
	if err := h.catalogSvc.UpdateProduct(r.Context(), product); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, newProductResponse(product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	if err := h.catalogSvc.DeleteProduct(r.Context(), id); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ProductHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	products, err := h.catalogSvc.ListProductsByStore(r.Context(), storeID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	h.render.JSON(w, http.StatusOK, out)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	products, err := h.catalogSvc.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	h.render.JSON(w, http.StatusOK, out)
}
