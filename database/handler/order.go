package handler

import (
	"net/http"
	"strings"

	"local_mart/apperr"
	"local_mart/model"
	"local_mart/utils"
)

const (
	idempotencyHeader    = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
)

// CreateOrder checks out the caller's cart. A repeated Idempotency-Key
// returns the order created by the first request with 200.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.CheckoutRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}
	body.IdempotencyKey = strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if len(body.IdempotencyKey) > maxIdempotencyKeyLen {
		utils.RespondError(w, apperr.Validation("%s must be at most %d characters", idempotencyHeader, maxIdempotencyKeyLen))
		return
	}

	order, replayed, err := h.Orders.CreateOrder(r.Context(), p.UserID(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if replayed {
		utils.RespondJSON(w, http.StatusOK, order)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	orders, err := h.Orders.ListForUser(r.Context(), p.UserID())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	orderID, err := idParam(r, "orderId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	order, err := h.Orders.GetForUser(r.Context(), p, orderID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	orderID, err := idParam(r, "orderId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.TransitionRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	order, err := h.Orders.TransitionStatus(r.Context(), p, orderID, body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) AssignDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "orderId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.AssignDeliveryBoyRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	order, err := h.Orders.AssignDeliveryBoy(r.Context(), orderID, body.DeliveryBoyID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

// ListDeliveryOrders lists the orders assigned to the calling delivery boy.
func (h *Handler) ListDeliveryOrders(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	orders, err := h.Orders.ListForDeliveryBoy(r.Context(), p.UserID())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}
