package handler

import (
	"net/http"

	"local_mart/model"
	"local_mart/utils"
)

func (h *Handler) ApplySeller(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.SellerApplicationRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	seller, err := h.Onboarding.ApplySeller(r.Context(), p, body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, seller)
}

func (h *Handler) GetMySeller(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	seller, err := h.Onboarding.GetSellerForUser(r.Context(), p.UserID())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, seller)
}

// ListSellers lists applications by ?status=, pending by default, newest first.
func (h *Handler) ListSellers(w http.ResponseWriter, r *http.Request) {
	status, err := approvalFilter(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	sellers, err := h.Onboarding.ListSellers(r.Context(), status)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sellers)
}

func (h *Handler) ApproveSeller(w http.ResponseWriter, r *http.Request) {
	admin, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	sellerID, err := idParam(r, "sellerId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	seller, err := h.Onboarding.ApproveSeller(r.Context(), admin.UserID(), sellerID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, seller)
}

func (h *Handler) RejectSeller(w http.ResponseWriter, r *http.Request) {
	admin, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	sellerID, err := idParam(r, "sellerId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.RejectRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	seller, err := h.Onboarding.RejectSeller(r.Context(), admin.UserID(), sellerID, body.Reason)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, seller)
}

func (h *Handler) ApplyDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.DeliveryBoyApplicationRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	rider, err := h.Onboarding.ApplyDeliveryBoy(r.Context(), p, body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, rider)
}

func (h *Handler) ListDeliveryBoys(w http.ResponseWriter, r *http.Request) {
	status, err := approvalFilter(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	riders, err := h.Onboarding.ListDeliveryBoys(r.Context(), status)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, riders)
}

func (h *Handler) ApproveDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	admin, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	riderID, err := idParam(r, "deliveryBoyId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	rider, err := h.Onboarding.ApproveDeliveryBoy(r.Context(), admin.UserID(), riderID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rider)
}

func (h *Handler) RejectDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	admin, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	riderID, err := idParam(r, "deliveryBoyId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.RejectRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	rider, err := h.Onboarding.RejectDeliveryBoy(r.Context(), admin.UserID(), riderID, body.Reason)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rider)
}
