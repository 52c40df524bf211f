package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopapp-dev/shopapp/app/helpers"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type StockHandler struct {
	inventorySvc *services.InventoryService
	render       *render.Render
	log          *zap.SugaredLogger
}

func NewStockHandler(inventorySvc *services.InventoryService, rnd *render.Render, log *zap.SugaredLogger) *StockHandler {
	return &StockHandler{
		inventorySvc: inventorySvc,
		render:       rnd,
		log:          log,
	}
}

type restockRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	StoreID   uint `json:"store_id" validate:"required"`
	Delta     int  `json:"delta" validate:"required"`
}

func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := helpers.PathID(r, "productId")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}
	storeID, err := helpers.PathID(r, "storeId")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	stock, err := h.inventorySvc.GetStock(r.Context(), productID, storeID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, stock)
}

func (h *StockHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := helpers.PathID(r, "storeId")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid store id"})
		return
	}

	stocks, err := h.inventorySvc.GetStoreStocks(r.Context(), storeID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, stocks)
}

func (h *StockHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	stock, err := h.inventorySvc.Restock(r.Context(), req.ProductID, req.StoreID, req.Delta)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, stock)
}
