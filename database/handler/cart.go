package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"local_mart/middleware"
	"local_mart/model"
	"local_mart/utils"
)

// cartOwner keys the cart by the logged-in user or, for guests, by the guest
// session cookie. issue creates the cookie when it is missing.
func (h *Handler) cartOwner(w http.ResponseWriter, r *http.Request, issue bool) model.CartOwner {
	if p, ok := middleware.UserContextData(r); ok {
		return model.CartOwner{UserID: p.UserID()}
	}
	if issue {
		return model.CartOwner{SessionID: utils.EnsureGuestSession(w, r, h.Auth.GuestCookie, h.Auth.SecureCookies)}
	}
	return model.CartOwner{SessionID: utils.GuestSessionID(r, h.Auth.GuestCookie)}
}

func emptyOwner(owner model.CartOwner) bool {
	return owner.UserID == 0 && owner.SessionID == ""
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner := h.cartOwner(w, r, false)
	if emptyOwner(owner) {
		utils.RespondJSON(w, http.StatusOK, model.Cart{Items: make([]model.CartLine, 0), Subtotal: decimal.Zero})
		return
	}

	cart, err := h.Cart.Snapshot(r.Context(), owner)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, cart)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var body model.AddCartItemRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	item, err := h.Cart.Add(r.Context(), h.cartOwner(w, r, true), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "itemId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.UpdateCartItemRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	item, err := h.Cart.Update(r.Context(), h.cartOwner(w, r, false), itemID, body.Quantity)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "itemId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	owner := h.cartOwner(w, r, false)
	if !emptyOwner(owner) {
		if err := h.Cart.Remove(r.Context(), owner, itemID); err != nil {
			utils.RespondError(w, err)
			return
		}
	}
	utils.RespondJSON(w, http.StatusOK, messageResponse{Message: "item removed"})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	owner := h.cartOwner(w, r, false)
	if !emptyOwner(owner) {
		if err := h.Cart.Clear(r.Context(), owner); err != nil {
			utils.RespondError(w, err)
			return
		}
	}
	utils.RespondJSON(w, http.StatusOK, messageResponse{Message: "cart cleared"})
}
