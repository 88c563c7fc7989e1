package service

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"local_mart/model"
)

var testTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var orderCols = []string{
	"id", "order_number", "customer_id", "delivery_boy_id", "subtotal", "delivery_charge", "discount", "total",
	"payment_method", "payment_status", "status", "delivery_address", "delivery_instructions", "promo_code",
	"idempotency_key", "estimated_delivery_time", "actual_delivery_time", "created_at", "updated_at",
}

func orderRows(id, customerID int64, status model.OrderStatus, deliveryBoyID driver.Value) *sqlmock.Rows {
	address := `{"fullName":"Asha","addressLine1":"12 MG Road","city":"Jaipur","pincode":"302001","phone":"9876543210"}`
	return sqlmock.NewRows(orderCols).AddRow(
		id, fmt.Sprintf("ORD-%d", id), customerID, deliveryBoyID, "100.00", "20.00", "0.00", "120.00",
		"cod", "pending", string(status), []byte(address), nil, nil,
		nil, testTime.Add(45*time.Minute), nil, testTime, testTime,
	)
}

var cartLineCols = []string{
	"cart_item_id", "product_id", "seller_id", "name", "name_hindi", "image", "unit", "price", "quantity",
	"stock", "min_order_qty", "max_order_qty", "is_active",
}

var productCols = []string{
	"id", "seller_id", "category_id", "name", "name_hindi", "description", "description_hindi", "price",
	"original_price", "image", "unit", "brand", "stock", "min_order_qty", "max_order_qty", "is_active",
	"created_at", "updated_at",
}

func productRows(id int64, price string, minQty, maxQty int, active bool) *sqlmock.Rows {
	return sqlmock.NewRows(productCols).AddRow(
		id, 5, 2, "Milk", nil, nil, nil, price, nil, "milk.png", "litre", nil, 40, minQty, maxQty, active,
		testTime, testTime,
	)
}

var cartItemCols = []string{"id", "user_id", "session_id", "product_id", "quantity", "created_at", "updated_at"}

var sellerCols = []string{
	"id", "user_id", "store_name", "store_type", "address", "city", "pincode", "phone", "license_number",
	"gst_number", "approval_status", "rejection_reason", "applied_at", "approved_at", "rejected_at",
}

func sellerRows(id, userID int64, status model.ApprovalStatus) *sqlmock.Rows {
	return sqlmock.NewRows(sellerCols).AddRow(
		id, userID, "Sharma Kirana", "grocery", "Main Bazaar", "Jaipur", "302001", "9876543210", nil,
		nil, string(status), nil, testTime, nil, nil,
	)
}

var userCols = []string{
	"id", "external_id", "email", "name", "phone", "address", "city", "pincode", "role", "approval_status",
	"is_active", "created_at", "updated_at",
}

func userRows(id int64, role model.Role, approval model.ApprovalStatus) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		id, "ext-1", "asha@example.com", "Asha", nil, nil, nil, nil, string(role), string(approval),
		true, testTime, testTime,
	)
}

var orderItemCols = []string{"id", "order_id", "product_id", "seller_id", "product_name", "quantity", "unit_price", "total_price"}

var trackingCols = []string{"id", "order_id", "status", "message", "message_hindi", "location", "updated_by", "created_at"}

type fakeAreas struct {
	area     *model.DeliveryArea
	pincodes []string
}

func (f *fakeAreas) Lookup(_ context.Context, _ sqlx.QueryerContext, pincode string) (*model.DeliveryArea, error) {
	f.pincodes = append(f.pincodes, pincode)
	return f.area, nil
}

type seqNumbers struct {
	issued []string
}

func (s *seqNumbers) Next(customerID int64) (string, error) {
	number := fmt.Sprintf("ORD-TEST-%d-%d", customerID, len(s.issued)+1)
	s.issued = append(s.issued, number)
	return number, nil
}
