package server

import (
	"github.com/go-chi/chi/v5"

	"local_mart/database/handler"
)

func AdminRoute(h *handler.Handler) func(chi.Router) {
	return func(admin chi.Router) {
		admin.Route("/users", func(user chi.Router) {
			user.Get("/{userId}", h.GetUser)
		})
		admin.Route("/sellers", func(seller chi.Router) {
			seller.Get("/", h.ListSellers)
			seller.Post("/{sellerId}/approve", h.ApproveSeller)
			seller.Post("/{sellerId}/reject", h.RejectSeller)
		})
		admin.Route("/delivery-boys", func(rider chi.Router) {
			rider.Get("/", h.ListDeliveryBoys)
			rider.Post("/{deliveryBoyId}/approve", h.ApproveDeliveryBoy)
			rider.Post("/{deliveryBoyId}/reject", h.RejectDeliveryBoy)
		})
		admin.Route("/orders", func(order chi.Router) {
			order.Post("/{orderId}/assign", h.AssignDeliveryBoy)
		})
		admin.Post("/categories", h.CreateCategory)
		admin.Post("/delivery-areas", h.UpsertDeliveryArea)
	}
}
