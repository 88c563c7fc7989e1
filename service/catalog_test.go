package service

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
	"local_mart/model"
)

func productRequest() model.ProductRequest {
	return model.ProductRequest{
		CategoryID: 2,
		Name:       "Milk",
		Price:      decimal.RequireFromString("50.00"),
		Image:      "milk.png",
		Unit:       "litre",
		Stock:      40,
	}
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)

	negative := productRequest()
	negative.Price = decimal.RequireFromString("-1")
	_, err := svc.CreateProduct(context.Background(), 3, negative)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	bounds := productRequest()
	bounds.MinOrderQty = 5
	bounds.MaxOrderQty = 2
	_, err = svc.CreateProduct(context.Background(), 3, bounds)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductRequiresApprovedSeller(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WithArgs(3).
		WillReturnRows(sellerRows(5, 3, model.ApprovalPending))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(sellerCols))

	_, err := svc.CreateProduct(context.Background(), 3, productRequest())
	assert.Equal(t, http.StatusForbidden, apperr.StatusCode(err))

	_, err = svc.CreateProduct(context.Background(), 4, productRequest())
	assert.Equal(t, http.StatusForbidden, apperr.StatusCode(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductDefaultsOrderBounds(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products(")).
		WithArgs(5, 2, "Milk", nil, nil, nil, sqlmock.AnyArg(), nil, "milk.png", "litre", nil, 40, 1, 100).
		WillReturnRows(productRows(101, "50.00", 1, 100, true))

	product, err := svc.CreateProduct(context.Background(), 3, productRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), product.ID)
	assert.Equal(t, 100, product.MaxOrderQty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products(")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "products_category_id_fkey"})

	_, err := svc.CreateProduct(context.Background(), 3, productRequest())
	assert.Equal(t, "category 2 does not exist", apperr.PublicMessage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductScopedToSeller(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)
	stock := 12

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND seller_id = $2")).
		WithArgs(202, 5, nil, 12, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := svc.UpdateProduct(context.Background(), 3, 202, model.ProductUpdateRequest{Stock: &stock})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductRejectsBadInput(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)
	price := decimal.RequireFromString("-0.01")
	minQty, maxQty := 6, 3

	_, err := svc.UpdateProduct(context.Background(), 3, 101, model.ProductUpdateRequest{Price: &price})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateProduct(context.Background(), 3, 101, model.ProductUpdateRequest{MinOrderQty: &minQty, MaxOrderQty: &maxQty})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "products_order_qty_bounds_check"})

	_, err = svc.UpdateProduct(context.Background(), 3, 101, model.ProductUpdateRequest{MinOrderQty: &minQty})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateProductKeepsRow(t *testing.T) {
	db, mock := newMock(t)
	svc := NewCatalogService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET is_active = FALSE")).
		WithArgs(101, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeactivateProduct(context.Background(), 3, 101))

	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers WHERE user_id = $1")).
		WillReturnRows(sellerRows(5, 3, model.ApprovalApproved))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET is_active = FALSE")).
		WithArgs(202, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeactivateProduct(context.Background(), 3, 202)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
