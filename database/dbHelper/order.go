package dbHelper

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"local_mart/model"
)

const orderColumns = `id, order_number, customer_id, delivery_boy_id, subtotal, delivery_charge, discount, total,
	payment_method, payment_status, status, delivery_address, delivery_instructions, promo_code, idempotency_key,
	estimated_delivery_time, actual_delivery_time, created_at, updated_at`

func GetOrderByIdempotencyKey(ctx context.Context, db sqlx.QueryerContext, customerID int64, key string) (model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 AND idempotency_key = $2`
	var order model.Order
	err := sqlx.GetContext(ctx, db, &order, SQL, customerID, key)
	return order, err
}

// InsertOrder stores the order header and fills in the generated id and
// timestamps. The estimated delivery time is created_at plus window.
func InsertOrder(ctx context.Context, db sqlx.ExtContext, order *model.Order, window time.Duration) error {
	SQL := `INSERT INTO orders(order_number, customer_id, subtotal, delivery_charge, discount, total, payment_method,
			                   payment_status, status, delivery_address, delivery_instructions, promo_code,
			                   idempotency_key, estimated_delivery_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW() + make_interval(secs => $14))
			RETURNING id, estimated_delivery_time, created_at, updated_at`
	return db.QueryRowxContext(ctx, SQL, order.OrderNumber, order.CustomerID, order.Subtotal, order.DeliveryCharge,
		order.Discount, order.Total, order.PaymentMethod, order.PaymentStatus, order.Status, order.DeliveryAddress,
		order.DeliveryInstructions, order.PromoCode, order.IdempotencyKey, window.Seconds()).
		Scan(&order.ID, &order.EstimatedDeliveryTime, &order.CreatedAt, &order.UpdatedAt)
}

func InsertOrderItem(ctx context.Context, db sqlx.ExtContext, item *model.OrderItem) error {
	SQL := `INSERT INTO order_items(order_id, product_id, seller_id, product_name, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
	return db.QueryRowxContext(ctx, SQL, item.OrderID, item.ProductID, item.SellerID, item.ProductName,
		item.Quantity, item.UnitPrice, item.TotalPrice).Scan(&item.ID)
}

func InsertTracking(ctx context.Context, db sqlx.ExtContext, tracking *model.OrderTracking) error {
	SQL := `INSERT INTO order_tracking(order_id, status, message, message_hindi, location, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`
	return db.QueryRowxContext(ctx, SQL, tracking.OrderID, tracking.Status, tracking.Message, tracking.MessageHindi,
		tracking.Location, tracking.UpdatedBy).Scan(&tracking.ID, &tracking.CreatedAt)
}

func GetOrder(ctx context.Context, db sqlx.QueryerContext, orderID int64) (model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var order model.Order
	err := sqlx.GetContext(ctx, db, &order, SQL, orderID)
	return order, err
}

func GetOrderForUpdate(ctx context.Context, db sqlx.QueryerContext, orderID int64) (model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	var order model.Order
	err := sqlx.GetContext(ctx, db, &order, SQL, orderID)
	return order, err
}

func ListOrdersForCustomer(ctx context.Context, db sqlx.QueryerContext, customerID int64) ([]model.Order, error) {
	SQL := `SELECT ` + orderColumns + `
			FROM orders
			WHERE customer_id = $1
			ORDER BY created_at DESC, id DESC`
	list := make([]model.Order, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, customerID)
	return list, err
}

func ListOrdersForDeliveryBoy(ctx context.Context, db sqlx.QueryerContext, deliveryBoyID int64) ([]model.Order, error) {
	SQL := `SELECT ` + orderColumns + `
			FROM orders
			WHERE delivery_boy_id = $1
			ORDER BY created_at DESC, id DESC`
	list := make([]model.Order, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, deliveryBoyID)
	return list, err
}

// GetOrderItems returns the items of every order in orderIDs, grouped by
// order id in insertion order.
func GetOrderItems(ctx context.Context, db sqlx.QueryerContext, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	SQL := `SELECT id, order_id, product_id, seller_id, product_name, quantity, unit_price, total_price
			FROM order_items
			WHERE order_id = ANY($1)
			ORDER BY order_id, id`
	list := make([]model.OrderItem, 0)
	if err := sqlx.SelectContext(ctx, db, &list, SQL, pq.Array(orderIDs)); err != nil {
		return nil, err
	}
	grouped := make(map[int64][]model.OrderItem, len(orderIDs))
	for _, item := range list {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped, nil
}

func GetOrderTracking(ctx context.Context, db sqlx.QueryerContext, orderID int64) ([]model.OrderTracking, error) {
	SQL := `SELECT id, order_id, status, message, message_hindi, location, updated_by, created_at
			FROM order_tracking
			WHERE order_id = $1
			ORDER BY created_at, id`
	list := make([]model.OrderTracking, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, orderID)
	return list, err
}

// UpdateOrderStatus moves the order to status. Delivering stamps the actual
// delivery time and settles cash-on-delivery payments.
func UpdateOrderStatus(ctx context.Context, db sqlx.ExtContext, orderID int64, status model.OrderStatus) (model.Order, error) {
	SQL := `UPDATE orders
			SET status = $2,
			    actual_delivery_time = CASE WHEN $2 = 'delivered' THEN NOW() ELSE actual_delivery_time END,
			    payment_status = CASE WHEN $2 = 'delivered' AND payment_method = 'cod' THEN 'paid' ELSE payment_status END,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING ` + orderColumns
	var order model.Order
	err := sqlx.GetContext(ctx, db, &order, SQL, orderID, status)
	return order, err
}

func AssignDeliveryBoy(ctx context.Context, db sqlx.ExtContext, orderID, deliveryBoyID int64) (model.Order, error) {
	SQL := `UPDATE orders
			SET delivery_boy_id = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + orderColumns
	var order model.Order
	err := sqlx.GetContext(ctx, db, &order, SQL, orderID, deliveryBoyID)
	return order, err
}

// OrderHasSellerItems reports whether the order contains an item sold by the
// seller belonging to userID.
func OrderHasSellerItems(ctx context.Context, db sqlx.QueryerContext, orderID, userID int64) (bool, error) {
	SQL := `SELECT EXISTS(
				SELECT 1
				FROM order_items oi
				JOIN sellers s ON s.id = oi.seller_id
				WHERE oi.order_id = $1 AND s.user_id = $2)`
	var exists bool
	err := sqlx.GetContext(ctx, db, &exists, SQL, orderID, userID)
	return exists, err
}

func OrderContainsProduct(ctx context.Context, db sqlx.QueryerContext, orderID, productID int64) (bool, error) {
	SQL := `SELECT EXISTS(SELECT 1 FROM order_items WHERE order_id = $1 AND product_id = $2)`
	var exists bool
	err := sqlx.GetContext(ctx, db, &exists, SQL, orderID, productID)
	return exists, err
}
