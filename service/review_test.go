package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
	"local_mart/model"
)

var reviewCols = []string{"id", "customer_id", "product_id", "order_id", "rating", "comment", "created_at"}

func TestAddReviewRatingBounds(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 101, OrderID: 11, Rating: rating})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "rating %d", rating)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewRequiresDeliveredOrder(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WithArgs(11).
		WillReturnRows(orderRows(11, 7, model.OrderStatusOutForDelivery, 4))

	_, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 101, OrderID: 11, Rating: 4})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewForeignOrder(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WillReturnRows(orderRows(11, 8, model.OrderStatusDelivered, 4))

	_, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 101, OrderID: 11, Rating: 4})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewProductNotInOrder(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WillReturnRows(orderRows(11, 7, model.OrderStatusDelivered, 4))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = $1 AND product_id = $2")).
		WithArgs(11, 202).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 202, OrderID: 11, Rating: 4})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReview(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)
	comment := "fresh"

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WillReturnRows(orderRows(11, 7, model.OrderStatusDelivered, 4))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = $1 AND product_id = $2")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews(")).
		WithArgs(7, 101, 11, 5, "fresh").
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(61, 7, 101, 11, 5, "fresh", testTime))

	review, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 101, OrderID: 11, Rating: 5, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewDuplicate(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WillReturnRows(orderRows(11, 7, model.OrderStatusDelivered, 4))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = $1 AND product_id = $2")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews(")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "reviews_customer_product_order_key"})

	_, err := svc.Add(context.Background(), 7, model.ReviewRequest{ProductID: 101, OrderID: 11, Rating: 5})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviewsForProduct(t *testing.T) {
	db, mock := newMock(t)
	svc := NewReviewService(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("AVG(rating)")).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"count", "average"}).AddRow(2, "4.50"))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow(62, 8, 101, 12, 4, nil, testTime).
			AddRow(61, 7, 101, 11, 5, "fresh", testTime))

	reviews, err := svc.ListForProduct(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, 2, reviews.Count)
	assert.Equal(t, "4.50", reviews.Average.StringFixed(2))
	require.Len(t, reviews.Reviews, 2)
	assert.Equal(t, int64(62), reviews.Reviews[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
