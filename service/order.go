package service

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/metrics"
	"local_mart/model"
)

const (
	orderNumberConstraint    = "orders_order_number_key"
	idempotencyKeyConstraint = "orders_customer_idempotency_key"
)

type OrderService struct {
	db      *sqlx.DB
	areas   DeliveryAreaLookup
	numbers OrderNumberGenerator
	window  time.Duration
	now     func() time.Time
}

func NewOrderService(db *sqlx.DB, areas DeliveryAreaLookup, numbers OrderNumberGenerator, window time.Duration) *OrderService {
	return &OrderService{
		db:      db,
		areas:   areas,
		numbers: numbers,
		window:  window,
		now:     time.Now,
	}
}

const checkoutAttempts = 2

// CreateOrder turns the customer's cart into an order in one transaction.
// The returned flag is true when an earlier order with the same idempotency
// key was returned instead of creating a new one.
func (s *OrderService) CreateOrder(ctx context.Context, customerID int64, body model.CheckoutRequest) (model.OrderDetail, bool, error) {
	var (
		detail   model.OrderDetail
		replayed bool
		err      error
	)
	for attempt := 1; attempt <= checkoutAttempts; attempt++ {
		detail, replayed, err = s.checkout(ctx, customerID, body)
		if !database.IsUniqueViolation(err, orderNumberConstraint) || attempt == checkoutAttempts {
			break
		}
		metrics.CheckoutRetries.Inc()
		logrus.WithField("customer_id", customerID).Warn("CreateOrder: order number collision, retrying")
	}
	if database.IsUniqueViolation(err, orderNumberConstraint) {
		logrus.WithField("customer_id", customerID).Error("CreateOrder: order number collided on every attempt")
		return model.OrderDetail{}, false, apperr.Conflict("could not allocate an order number, please retry")
	}

	if database.IsUniqueViolation(err, idempotencyKeyConstraint) {
		// a concurrent request with the same key won the race
		order, getErr := dbHelper.GetOrderByIdempotencyKey(ctx, s.db, customerID, body.IdempotencyKey)
		if getErr != nil {
			return model.OrderDetail{}, false, apperr.Internal(getErr, "failed to load order")
		}
		detail, err = s.detail(ctx, s.db, order)
		return detail, true, err
	}
	if err != nil {
		return model.OrderDetail{}, false, err
	}

	if !replayed {
		metrics.OrdersPlaced.WithLabelValues(string(detail.PaymentMethod)).Inc()
		logrus.WithFields(logrus.Fields{
			"order_number": detail.OrderNumber,
			"customer_id":  customerID,
			"total":        detail.Total.StringFixed(2),
		}).Info("order placed")
	}
	return detail, replayed, nil
}

func (s *OrderService) checkout(ctx context.Context, customerID int64, body model.CheckoutRequest) (model.OrderDetail, bool, error) {
	var (
		detail   model.OrderDetail
		replayed bool
	)
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		if body.IdempotencyKey != "" {
			existing, err := dbHelper.GetOrderByIdempotencyKey(ctx, tx, customerID, body.IdempotencyKey)
			if err == nil {
				detail, err = s.detail(ctx, tx, existing)
				replayed = true
				return err
			}
			if !database.IsNoRows(err) {
				return apperr.Internal(err, "failed to look up idempotency key")
			}
		}

		owner := model.CartOwner{UserID: customerID}
		lines, err := dbHelper.GetCartLines(ctx, tx, owner, true)
		if err != nil {
			return apperr.Internal(err, "failed to read cart")
		}
		if len(lines) == 0 {
			return apperr.ErrEmptyCart
		}

		area, err := s.areas.Lookup(ctx, tx, body.DeliveryAddress.Pincode)
		if err != nil {
			return apperr.Internal(err, "failed to look up delivery area")
		}
		if area == nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": customerID,
				"pincode":     body.DeliveryAddress.Pincode,
			}).Info("no delivery area configured for pincode, charging no delivery")
		}

		var promo *model.PromoCode
		if body.PromoCode != nil && strings.TrimSpace(*body.PromoCode) != "" {
			code := model.NormalizePromoCode(*body.PromoCode)
			found, err := dbHelper.GetPromoCodeForUpdate(ctx, tx, code)
			if database.IsNoRows(err) {
				return apperr.Validation("promo code %s is not valid", code)
			}
			if err != nil {
				return apperr.Internal(err, "failed to read promo code")
			}
			promo = &found
		}

		totals, items, err := model.PriceOrder(lines, area, promo, s.now())
		if err != nil {
			return err
		}

		number, err := s.numbers.Next(customerID)
		if err != nil {
			return apperr.Internal(err, "failed to generate order number")
		}

		order := model.Order{
			OrderNumber:          number,
			CustomerID:           customerID,
			Subtotal:             totals.Subtotal,
			DeliveryCharge:       totals.DeliveryCharge,
			Discount:             totals.Discount,
			Total:                totals.Total,
			PaymentMethod:        body.PaymentMethod,
			PaymentStatus:        model.PaymentStatusPending,
			Status:               model.OrderStatusPlaced,
			DeliveryAddress:      body.DeliveryAddress,
			DeliveryInstructions: body.DeliveryInstructions,
		}
		if promo != nil {
			order.PromoCode = &promo.Code
		}
		if body.IdempotencyKey != "" {
			key := body.IdempotencyKey
			order.IdempotencyKey = &key
		}
		if err := dbHelper.InsertOrder(ctx, tx, &order, s.window); err != nil {
			return apperr.Internal(err, "failed to create order")
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := dbHelper.InsertOrderItem(ctx, tx, &items[i]); err != nil {
				return apperr.Internal(err, "failed to create order item")
			}
		}

		for _, item := range items {
			affected, err := dbHelper.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return apperr.Internal(err, "failed to update stock")
			}
			if affected == 0 {
				return apperr.Validation("product %q is out of stock", item.ProductName)
			}
		}

		message, messageHindi := model.TrackingMessage(model.OrderStatusPlaced)
		tracking := model.OrderTracking{
			OrderID:      order.ID,
			Status:       model.OrderStatusPlaced,
			Message:      &message,
			MessageHindi: &messageHindi,
			UpdatedBy:    &customerID,
		}
		if err := dbHelper.InsertTracking(ctx, tx, &tracking); err != nil {
			return apperr.Internal(err, "failed to record order tracking")
		}

		if promo != nil {
			affected, err := dbHelper.RedeemPromoCode(ctx, tx, promo.ID)
			if err != nil {
				return apperr.Internal(err, "failed to redeem promo code")
			}
			if affected == 0 {
				return apperr.Validation("promo code %s has reached its usage limit", promo.Code)
			}
		}

		if err := dbHelper.ClearCart(ctx, tx, owner); err != nil {
			return apperr.Internal(err, "failed to clear cart")
		}

		detail = model.OrderDetail{
			Order:    order,
			Items:    items,
			Tracking: []model.OrderTracking{tracking},
		}
		return nil
	})
	return detail, replayed, txErr
}

// detail loads the items and tracking history of order.
func (s *OrderService) detail(ctx context.Context, db sqlx.QueryerContext, order model.Order) (model.OrderDetail, error) {
	items, err := dbHelper.GetOrderItems(ctx, db, []int64{order.ID})
	if err != nil {
		return model.OrderDetail{}, apperr.Internal(err, "failed to load order items")
	}
	tracking, err := dbHelper.GetOrderTracking(ctx, db, order.ID)
	if err != nil {
		return model.OrderDetail{}, apperr.Internal(err, "failed to load order tracking")
	}
	detail := model.OrderDetail{Order: order, Items: items[order.ID], Tracking: tracking}
	if detail.Items == nil {
		detail.Items = make([]model.OrderItem, 0)
	}
	return detail, nil
}

// withItems attaches items to every order with a single query.
func (s *OrderService) withItems(ctx context.Context, orders []model.Order) ([]model.OrderDetail, error) {
	details := make([]model.OrderDetail, 0, len(orders))
	if len(orders) == 0 {
		return details, nil
	}
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	items, err := dbHelper.GetOrderItems(ctx, s.db, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load order items")
	}
	for _, order := range orders {
		orderItems := items[order.ID]
		if orderItems == nil {
			orderItems = make([]model.OrderItem, 0)
		}
		details = append(details, model.OrderDetail{Order: order, Items: orderItems})
	}
	return details, nil
}

// ListForUser returns the customer's orders newest first, with their items.
func (s *OrderService) ListForUser(ctx context.Context, customerID int64) ([]model.OrderDetail, error) {
	orders, err := dbHelper.ListOrdersForCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list orders")
	}
	return s.withItems(ctx, orders)
}

// ListForDeliveryBoy returns the orders assigned to the delivery boy account
// of userID.
func (s *OrderService) ListForDeliveryBoy(ctx context.Context, userID int64) ([]model.OrderDetail, error) {
	boy, err := dbHelper.GetDeliveryBoyByUserID(ctx, s.db, userID)
	if database.IsNoRows(err) {
		return nil, apperr.NotFound("delivery boy profile not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load delivery boy")
	}
	orders, err := dbHelper.ListOrdersForDeliveryBoy(ctx, s.db, boy.ID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list orders")
	}
	return s.withItems(ctx, orders)
}

// orderAccess describes how the caller relates to an order.
type orderAccess struct {
	admin    bool
	owner    bool
	seller   bool
	assigned bool
}

func (a orderAccess) visible() bool {
	return a.admin || a.owner || a.seller || a.assigned
}

func (s *OrderService) access(ctx context.Context, db sqlx.QueryerContext, principal model.Principal, order model.Order) (orderAccess, error) {
	access := orderAccess{
		admin: principal.IsAdmin(),
		owner: order.CustomerID == principal.UserID(),
	}
	switch acc := principal.Account.(type) {
	case model.SellerAccount:
		if !acc.CanSell() {
			break
		}
		has, err := dbHelper.OrderHasSellerItems(ctx, db, order.ID, acc.ID)
		if err != nil {
			return access, err
		}
		access.seller = has
	case model.DeliveryBoyAccount:
		if order.DeliveryBoyID == nil {
			break
		}
		boy, err := dbHelper.GetDeliveryBoyByUserID(ctx, db, acc.ID)
		if database.IsNoRows(err) {
			break
		}
		if err != nil {
			return access, err
		}
		access.assigned = boy.ID == *order.DeliveryBoyID
	}
	return access, nil
}

// GetForUser returns an order with items and tracking when the caller may see
// it. Orders the caller has no relation to are reported as not found.
func (s *OrderService) GetForUser(ctx context.Context, principal model.Principal, orderID int64) (model.OrderDetail, error) {
	order, err := dbHelper.GetOrder(ctx, s.db, orderID)
	if database.IsNoRows(err) {
		return model.OrderDetail{}, apperr.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return model.OrderDetail{}, apperr.Internal(err, "failed to load order")
	}
	access, err := s.access(ctx, s.db, principal, order)
	if err != nil {
		return model.OrderDetail{}, apperr.Internal(err, "failed to check order access")
	}
	if !access.visible() {
		return model.OrderDetail{}, apperr.NotFound("order %d not found", orderID)
	}
	return s.detail(ctx, s.db, order)
}

// mayTransition decides whether the caller may move an order from -> to.
// Legality of the transition itself is checked separately.
func mayTransition(access orderAccess, from, to model.OrderStatus) bool {
	if access.admin {
		return true
	}
	switch to {
	case model.OrderStatusConfirmed, model.OrderStatusPacked:
		return access.seller
	case model.OrderStatusOutForDelivery, model.OrderStatusDelivered:
		return access.assigned
	case model.OrderStatusCancelled:
		return access.owner && (from == model.OrderStatusPlaced || from == model.OrderStatusConfirmed)
	}
	return false
}

// TransitionStatus moves an order one legal step and appends a tracking row.
// Illegal transitions leave the order and its history untouched.
func (s *OrderService) TransitionStatus(ctx context.Context, principal model.Principal, orderID int64, body model.TransitionRequest) (model.OrderDetail, error) {
	var detail model.OrderDetail
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		order, err := dbHelper.GetOrderForUpdate(ctx, tx, orderID)
		if database.IsNoRows(err) {
			return apperr.NotFound("order %d not found", orderID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load order")
		}

		access, err := s.access(ctx, tx, principal, order)
		if err != nil {
			return apperr.Internal(err, "failed to check order access")
		}
		if !access.visible() {
			return apperr.NotFound("order %d not found", orderID)
		}
		if err := model.ValidateTransition(order.Status, body.Status); err != nil {
			return err
		}
		if !mayTransition(access, order.Status, body.Status) {
			return apperr.Forbidden("not allowed to move this order to " + string(body.Status))
		}

		updated, err := dbHelper.UpdateOrderStatus(ctx, tx, order.ID, body.Status)
		if err != nil {
			return apperr.Internal(err, "failed to update order status")
		}
		if body.Status == model.OrderStatusCancelled {
			if err := dbHelper.RestoreStockForOrder(ctx, tx, order.ID); err != nil {
				return apperr.Internal(err, "failed to restore stock")
			}
		}

		message, messageHindi := model.TrackingMessage(body.Status)
		if body.Message != nil && strings.TrimSpace(*body.Message) != "" {
			message = *body.Message
		}
		if body.MessageHindi != nil && strings.TrimSpace(*body.MessageHindi) != "" {
			messageHindi = *body.MessageHindi
		}
		actor := principal.UserID()
		tracking := model.OrderTracking{
			OrderID:      order.ID,
			Status:       body.Status,
			Message:      &message,
			MessageHindi: &messageHindi,
			Location:     body.Location,
			UpdatedBy:    &actor,
		}
		if err := dbHelper.InsertTracking(ctx, tx, &tracking); err != nil {
			return apperr.Internal(err, "failed to record order tracking")
		}

		detail, err = s.detail(ctx, tx, updated)
		return err
	})
	if txErr != nil {
		return model.OrderDetail{}, txErr
	}

	metrics.OrderTransitions.WithLabelValues(string(body.Status)).Inc()
	logrus.WithFields(logrus.Fields{
		"order_number": detail.OrderNumber,
		"status":       body.Status,
		"actor_id":     principal.UserID(),
	}).Info("order status changed")
	return detail, nil
}

// AssignDeliveryBoy hands a non-terminal order to an approved, available
// delivery boy.
func (s *OrderService) AssignDeliveryBoy(ctx context.Context, orderID, deliveryBoyID int64) (model.Order, error) {
	var order model.Order
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		current, err := dbHelper.GetOrderForUpdate(ctx, tx, orderID)
		if database.IsNoRows(err) {
			return apperr.NotFound("order %d not found", orderID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load order")
		}
		if current.Status.IsTerminal() {
			return apperr.InvalidTransition("order is already %s", current.Status)
		}

		boy, err := dbHelper.GetDeliveryBoyForUpdate(ctx, tx, deliveryBoyID)
		if database.IsNoRows(err) {
			return apperr.NotFound("delivery boy %d not found", deliveryBoyID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load delivery boy")
		}
		if boy.ApprovalStatus != model.ApprovalApproved {
			return apperr.Validation("delivery boy %d is not approved", deliveryBoyID)
		}
		if !boy.IsAvailable {
			return apperr.Validation("delivery boy %d is not available", deliveryBoyID)
		}

		order, err = dbHelper.AssignDeliveryBoy(ctx, tx, orderID, deliveryBoyID)
		if err != nil {
			return apperr.Internal(err, "failed to assign delivery boy")
		}
		return nil
	})
	if txErr != nil {
		return model.Order{}, txErr
	}
	logrus.WithFields(logrus.Fields{
		"order_number":    order.OrderNumber,
		"delivery_boy_id": deliveryBoyID,
	}).Info("delivery boy assigned")
	return order, nil
}
