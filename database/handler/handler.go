package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"local_mart/apperr"
	"local_mart/config"
	"local_mart/identity"
	"local_mart/middleware"
	"local_mart/model"
)

type UserService interface {
	SignIn(ctx context.Context, id identity.Identity) (model.Principal, error)
	Get(ctx context.Context, userID int64) (model.AccountView, error)
	UpdateProfile(ctx context.Context, userID int64, body model.UpdateProfileRequest) (model.Principal, error)
}

type CartService interface {
	Add(ctx context.Context, owner model.CartOwner, body model.AddCartItemRequest) (model.CartItem, error)
	Update(ctx context.Context, owner model.CartOwner, cartItemID int64, quantity int) (model.CartItem, error)
	Remove(ctx context.Context, owner model.CartOwner, cartItemID int64) error
	Clear(ctx context.Context, owner model.CartOwner) error
	Snapshot(ctx context.Context, owner model.CartOwner) (model.Cart, error)
	MergeGuest(ctx context.Context, userID int64, sessionID string) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, customerID int64, body model.CheckoutRequest) (model.OrderDetail, bool, error)
	ListForUser(ctx context.Context, customerID int64) ([]model.OrderDetail, error)
	ListForDeliveryBoy(ctx context.Context, userID int64) ([]model.OrderDetail, error)
	GetForUser(ctx context.Context, principal model.Principal, orderID int64) (model.OrderDetail, error)
	TransitionStatus(ctx context.Context, principal model.Principal, orderID int64, body model.TransitionRequest) (model.OrderDetail, error)
	AssignDeliveryBoy(ctx context.Context, orderID, deliveryBoyID int64) (model.Order, error)
}

type OnboardingService interface {
	ApplySeller(ctx context.Context, principal model.Principal, body model.SellerApplicationRequest) (model.Seller, error)
	ApproveSeller(ctx context.Context, adminID, sellerID int64) (model.Seller, error)
	RejectSeller(ctx context.Context, adminID, sellerID int64, reason string) (model.Seller, error)
	GetSellerForUser(ctx context.Context, userID int64) (model.Seller, error)
	ListSellers(ctx context.Context, status model.ApprovalStatus) ([]model.Seller, error)
	ApplyDeliveryBoy(ctx context.Context, principal model.Principal, body model.DeliveryBoyApplicationRequest) (model.DeliveryBoy, error)
	ApproveDeliveryBoy(ctx context.Context, adminID, deliveryBoyID int64) (model.DeliveryBoy, error)
	RejectDeliveryBoy(ctx context.Context, adminID, deliveryBoyID int64, reason string) (model.DeliveryBoy, error)
	ListDeliveryBoys(ctx context.Context, status model.ApprovalStatus) ([]model.DeliveryBoy, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	SaveCategory(ctx context.Context, body model.CategoryRequest) (model.Category, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
	CreateProduct(ctx context.Context, userID int64, body model.ProductRequest) (model.Product, error)
	UpdateProduct(ctx context.Context, userID, productID int64, body model.ProductUpdateRequest) (model.Product, error)
	DeactivateProduct(ctx context.Context, userID, productID int64) error
}

type ReviewService interface {
	Add(ctx context.Context, customerID int64, body model.ReviewRequest) (model.Review, error)
	ListForProduct(ctx context.Context, productID int64) (model.ProductReviews, error)
}

type DeliveryAreaService interface {
	Quote(ctx context.Context, pincode string) (model.DeliveryArea, error)
	Upsert(ctx context.Context, body model.DeliveryAreaRequest) (model.DeliveryArea, error)
}

// Handler serves the HTTP API on top of the domain services.
type Handler struct {
	Identity   identity.Provider
	Users      UserService
	Cart       CartService
	Orders     OrderService
	Onboarding OnboardingService
	Catalog    CatalogService
	Reviews    ReviewService
	Areas      DeliveryAreaService
	Auth       config.AuthConfig
}

type messageResponse struct {
	Message string `json:"message"`
}

// idParam parses a positive numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// principal returns the caller attached by the auth middleware.
func principal(r *http.Request) (model.Principal, error) {
	p, ok := middleware.UserContextData(r)
	if !ok {
		return model.Principal{}, apperr.Auth("login required")
	}
	return p, nil
}

func approvalFilter(r *http.Request) (model.ApprovalStatus, error) {
	status := model.ApprovalStatus(r.URL.Query().Get("status"))
	if status == "" {
		return model.ApprovalPending, nil
	}
	if !status.Valid() {
		return "", apperr.Validation("status must be pending, approved or rejected")
	}
	return status, nil
}
