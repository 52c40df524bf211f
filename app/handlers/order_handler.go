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

type OrderHandler struct {
	orderSvc *services.OrderService
	render   *render.Render
	log      *zap.SugaredLogger
}

func NewOrderHandler(orderSvc *services.OrderService, rnd *render.Render, log *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		orderSvc: orderSvc,
		render:   rnd,
		log:      log,
	}
}

type createOrderRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
}

type addItemRequest struct {
	ProductID  uint            `json:"product_id" validate:"required"`
	Quantity   int             `json:"quantity" validate:"required"`
	PriceTotal decimal.Decimal `json:"price_total"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type changeStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=Created Confirmed Shipped Cancelled"`
}

type itemResponse struct {
	*models.Item
	PriceTotalDisplay string `json:"price_total_display"`
}

func newItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		Item:              item,
		PriceTotalDisplay: format.Money(item.PriceTotal),
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), req.CustomerID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.orderSvc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	item, err := h.orderSvc.AddItem(r.Context(), orderID, req.ProductID, req.Quantity, req.PriceTotal)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, newItemResponse(item))
}

func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	itemID, err := helpers.PathID(r, "itemId")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.orderSvc.UpdateItemQuantity(r.Context(), orderID, itemID, req.Quantity)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, newItemResponse(item))
}

func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	itemID, err := helpers.PathID(r, "itemId")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	if err := h.orderSvc.RemoveItem(r.Context(), orderID, itemID); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	if err := h.orderSvc.ChangeStatus(r.Context(), orderID, req.Status); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := helpers.PathID(r, "id")
	if err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	if err := h.orderSvc.DeleteOrder(r.Context(), orderID); err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
