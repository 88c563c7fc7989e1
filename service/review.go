package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/model"
)

const reviewConstraint = "reviews_customer_product_order_key"

type ReviewService struct {
	db        *sqlx.DB
	maxRating int
}

func NewReviewService(db *sqlx.DB, maxRating int) *ReviewService {
	return &ReviewService{db: db, maxRating: maxRating}
}

// Add records a review of a product from one of the customer's delivered
// orders.
func (s *ReviewService) Add(ctx context.Context, customerID int64, body model.ReviewRequest) (model.Review, error) {
	if body.Rating < 1 || body.Rating > s.maxRating {
		return model.Review{}, apperr.Validation("rating must be between 1 and %d", s.maxRating)
	}

	order, err := dbHelper.GetOrder(ctx, s.db, body.OrderID)
	if database.IsNoRows(err) || (err == nil && order.CustomerID != customerID) {
		return model.Review{}, apperr.NotFound("order %d not found", body.OrderID)
	}
	if err != nil {
		return model.Review{}, apperr.Internal(err, "failed to load order")
	}
	if order.Status != model.OrderStatusDelivered {
		return model.Review{}, apperr.Validation("only delivered orders can be reviewed")
	}

	contains, err := dbHelper.OrderContainsProduct(ctx, s.db, order.ID, body.ProductID)
	if err != nil {
		return model.Review{}, apperr.Internal(err, "failed to check order items")
	}
	if !contains {
		return model.Review{}, apperr.Validation("order %d does not contain product %d", order.ID, body.ProductID)
	}

	review, err := dbHelper.InsertReview(ctx, s.db, customerID, body)
	if database.IsUniqueViolation(err, reviewConstraint) {
		return model.Review{}, apperr.Conflict("product %d from order %d is already reviewed", body.ProductID, body.OrderID)
	}
	if err != nil {
		return model.Review{}, apperr.Internal(err, "failed to save review")
	}
	return review, nil
}

// ListForProduct returns the product's reviews newest first with their
// count and average rating.
func (s *ReviewService) ListForProduct(ctx context.Context, productID int64) (model.ProductReviews, error) {
	stats, err := dbHelper.GetReviewStats(ctx, s.db, productID)
	if err != nil {
		return model.ProductReviews{}, apperr.Internal(err, "failed to load review stats")
	}
	reviews, err := dbHelper.ListReviewsForProduct(ctx, s.db, productID)
	if err != nil {
		return model.ProductReviews{}, apperr.Internal(err, "failed to list reviews")
	}
	return model.ProductReviews{
		ProductID: productID,
		Average:   stats.Average,
		Count:     stats.Count,
		Reviews:   reviews,
	}, nil
}
