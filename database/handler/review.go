package handler

import (
	"net/http"

	"local_mart/model"
	"local_mart/utils"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.ReviewRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	review, err := h.Reviews.Add(r.Context(), p.UserID(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, review)
}

// ListProductReviews returns the reviews of a product with their average.
func (h *Handler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r, "productId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	reviews, err := h.Reviews.ListForProduct(r.Context(), productID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}
