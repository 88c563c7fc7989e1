package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"local_mart/model"
	"local_mart/utils"
)

func (h *Handler) QuoteDeliveryArea(w http.ResponseWriter, r *http.Request) {
	area, err := h.Areas.Quote(r.Context(), chi.URLParam(r, "pincode"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, area)
}

func (h *Handler) UpsertDeliveryArea(w http.ResponseWriter, r *http.Request) {
	var body model.DeliveryAreaRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	area, err := h.Areas.Upsert(r.Context(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, area)
}
