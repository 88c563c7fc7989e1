package handler

import (
	"net/http"
	"strconv"
	"strings"

	"local_mart/apperr"
	"local_mart/model"
	"local_mart/utils"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body model.CategoryRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	category, err := h.Catalog.SaveCategory(r.Context(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, category)
}

// ListProducts serves /api/products?categoryId=&search=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var filter model.ProductFilter
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoryID <= 0 {
			utils.RespondError(w, apperr.Validation("categoryId must be a positive integer"))
			return
		}
		filter.CategoryID = categoryID
	}
	filter.Search = strings.TrimSpace(r.URL.Query().Get("search"))

	products, err := h.Catalog.ListProducts(r.Context(), filter)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r, "productId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	product, err := h.Catalog.GetProduct(r.Context(), productID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.ProductRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	product, err := h.Catalog.CreateProduct(r.Context(), p.UserID(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	productID, err := idParam(r, "productId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.ProductUpdateRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	product, err := h.Catalog.UpdateProduct(r.Context(), p.UserID(), productID, body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	productID, err := idParam(r, "productId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if err := h.Catalog.DeactivateProduct(r.Context(), p.UserID(), productID); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, messageResponse{Message: "product deactivated"})
}
