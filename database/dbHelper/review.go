package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"local_mart/model"
)

func InsertReview(ctx context.Context, db sqlx.ExtContext, customerID int64, body model.ReviewRequest) (model.Review, error) {
	SQL := `INSERT INTO reviews(customer_id, product_id, order_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, customer_id, product_id, order_id, rating, comment, created_at`
	var review model.Review
	err := sqlx.GetContext(ctx, db, &review, SQL, customerID, body.ProductID, body.OrderID, body.Rating, body.Comment)
	return review, err
}

func ListReviewsForProduct(ctx context.Context, db sqlx.QueryerContext, productID int64) ([]model.Review, error) {
	SQL := `SELECT id, customer_id, product_id, order_id, rating, comment, created_at
			FROM reviews
			WHERE product_id = $1
			ORDER BY created_at DESC, id DESC`
	list := make([]model.Review, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, productID)
	return list, err
}

type ReviewStats struct {
	Count   int             `db:"count"`
	Average decimal.Decimal `db:"average"`
}

// GetReviewStats returns the count and the average rating rounded to two
// places, zero when the product has no reviews.
func GetReviewStats(ctx context.Context, db sqlx.QueryerContext, productID int64) (ReviewStats, error) {
	SQL := `SELECT COUNT(*) AS count, COALESCE(ROUND(AVG(rating), 2), 0) AS average
			FROM reviews
			WHERE product_id = $1`
	var stats ReviewStats
	err := sqlx.GetContext(ctx, db, &stats, SQL, productID)
	return stats, err
}
