package model

import (
	"local_mart/apperr"
)

var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderStatusPlaced:         OrderStatusConfirmed,
	OrderStatusConfirmed:      OrderStatusPacked,
	OrderStatusPacked:         OrderStatusOutForDelivery,
	OrderStatusOutForDelivery: OrderStatusDelivered,
}

var trackingMessages = map[OrderStatus][2]string{
	OrderStatusPlaced:         {"Order placed successfully", "ऑर्डर सफलतापूर्वक दिया गया"},
	OrderStatusConfirmed:      {"Order confirmed by the store", "दुकान द्वारा ऑर्डर की पुष्टि की गई"},
	OrderStatusPacked:         {"Order packed and ready for pickup", "ऑर्डर पैक होकर पिकअप के लिए तैयार है"},
	OrderStatusOutForDelivery: {"Order is out for delivery", "ऑर्डर डिलीवरी के लिए निकल चुका है"},
	OrderStatusDelivered:      {"Order delivered", "ऑर्डर डिलीवर हो गया"},
	OrderStatusCancelled:      {"Order cancelled", "ऑर्डर रद्द कर दिया गया"},
}

func (s OrderStatus) Valid() bool {
	_, ok := trackingMessages[s]
	return ok
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the single forward step from s, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextOrderStatus[s]
	return next, ok
}

// CanTransitionTo allows one step forward along the delivery chain, or
// cancellation from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.Valid() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	step, ok := s.Next()
	return ok && step == next
}

func ValidateTransition(from, to OrderStatus) error {
	if !to.Valid() {
		return apperr.Validation("unknown order status %q", to)
	}
	if from.IsTerminal() {
		return apperr.InvalidTransition("order is already %s", from)
	}
	if !from.CanTransitionTo(to) {
		return apperr.InvalidTransition("cannot move order from %s to %s", from, to)
	}
	return nil
}

// TrackingMessage returns the default English and Hindi messages for status.
func TrackingMessage(status OrderStatus) (string, string) {
	m := trackingMessages[status]
	return m[0], m[1]
}
