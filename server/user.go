package server

import (
	"github.com/go-chi/chi/v5"

	"local_mart/database/handler"
	"local_mart/middleware"
)

// PublicRoute serves the catalog and the cart, which guests may use.
func PublicRoute(h *handler.Handler, auth *middleware.Authenticator) func(chi.Router) {
	return func(r chi.Router) {
		r.Route("/auth", func(authRoute chi.Router) {
			authRoute.Post("/login", h.Login)
			authRoute.Post("/logout", h.Logout)
		})

		r.Get("/categories", h.ListCategories)
		r.Route("/products", func(product chi.Router) {
			product.Get("/", h.ListProducts)
			product.Get("/{productId}", h.GetProduct)
			product.Get("/{productId}/reviews", h.ListProductReviews)
		})
		r.Get("/delivery-areas/{pincode}", h.QuoteDeliveryArea)

		r.Route("/cart", func(cart chi.Router) {
			cart.Use(auth.Optional)
			cart.Get("/", h.GetCart)
			cart.Delete("/", h.ClearCart)
			cart.Post("/items", h.AddCartItem)
			cart.Patch("/items/{itemId}", h.UpdateCartItem)
			cart.Delete("/items/{itemId}", h.RemoveCartItem)
		})
	}
}

// UserRoute serves everything that needs a logged-in caller.
func UserRoute(h *handler.Handler, auth *middleware.Authenticator) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(auth.Required)

		r.Get("/me", h.Me)
		r.Patch("/me", h.UpdateProfile)

		r.Route("/orders", func(order chi.Router) {
			order.Post("/", h.CreateOrder)
			order.Get("/", h.ListOrders)
			order.Get("/{orderId}", h.GetOrder)
			order.Post("/{orderId}/status", h.TransitionOrder)
		})

		r.Post("/reviews", h.CreateReview)
		r.Post("/sellers/apply", h.ApplySeller)
		r.Post("/delivery-boys/apply", h.ApplyDeliveryBoy)

		r.Route("/seller", func(seller chi.Router) {
			seller.Get("/me", h.GetMySeller)
			seller.Route("/products", func(product chi.Router) {
				product.Use(middleware.SellerMiddleware)
				product.Post("/", h.CreateProduct)
				product.Patch("/{productId}", h.UpdateProduct)
				product.Delete("/{productId}", h.DeactivateProduct)
			})
		})

		r.Route("/delivery", func(delivery chi.Router) {
			delivery.Use(middleware.DeliveryBoyMiddleware)
			delivery.Get("/orders", h.ListDeliveryOrders)
		})
	}
}
