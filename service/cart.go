package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/model"
)

type CartService struct {
	db *sqlx.DB
}

func NewCartService(db *sqlx.DB) *CartService {
	return &CartService{db: db}
}

// Add puts quantity of a product in the owner's cart, merging with an
// existing line for the same product.
func (s *CartService) Add(ctx context.Context, owner model.CartOwner, body model.AddCartItemRequest) (model.CartItem, error) {
	product, err := dbHelper.GetProduct(ctx, s.db, body.ProductID)
	if database.IsNoRows(err) || (err == nil && !product.IsActive) {
		return model.CartItem{}, apperr.Validation("product %d is not available", body.ProductID)
	}
	if err != nil {
		return model.CartItem{}, apperr.Internal(err, "failed to load product")
	}
	if err := model.CheckQuantity(body.Quantity, product.MinOrderQty, product.MaxOrderQty); err != nil {
		return model.CartItem{}, err
	}

	item, err := dbHelper.UpsertCartItem(ctx, s.db, owner, product.ID, body.Quantity, product.MaxOrderQty)
	if database.IsNoRows(err) {
		return model.CartItem{}, apperr.Validation("quantity must be at most %d", product.MaxOrderQty)
	}
	if err != nil {
		return model.CartItem{}, apperr.Internal(err, "failed to add item to cart")
	}
	return item, nil
}

// Update sets the quantity of one of the owner's lines.
func (s *CartService) Update(ctx context.Context, owner model.CartOwner, cartItemID int64, quantity int) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, apperr.Validation("quantity must be at least 1")
	}
	line, err := dbHelper.GetCartLine(ctx, s.db, owner, cartItemID)
	if database.IsNoRows(err) {
		return model.CartItem{}, apperr.NotFound("cart item %d not found", cartItemID)
	}
	if err != nil {
		return model.CartItem{}, apperr.Internal(err, "failed to load cart item")
	}
	if err := model.CheckQuantity(quantity, line.MinOrderQty, line.MaxOrderQty); err != nil {
		return model.CartItem{}, err
	}

	item, err := dbHelper.UpdateCartItemQuantity(ctx, s.db, owner, cartItemID, quantity)
	if database.IsNoRows(err) {
		return model.CartItem{}, apperr.NotFound("cart item %d not found", cartItemID)
	}
	if err != nil {
		return model.CartItem{}, apperr.Internal(err, "failed to update cart item")
	}
	return item, nil
}

// Remove deletes a line. Removing a line that is not there succeeds.
func (s *CartService) Remove(ctx context.Context, owner model.CartOwner, cartItemID int64) error {
	if err := dbHelper.DeleteCartItem(ctx, s.db, owner, cartItemID); err != nil {
		return apperr.Internal(err, "failed to remove cart item")
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, owner model.CartOwner) error {
	if err := dbHelper.ClearCart(ctx, s.db, owner); err != nil {
		return apperr.Internal(err, "failed to clear cart")
	}
	return nil
}

// Snapshot returns the owner's lines with live product data and the subtotal.
func (s *CartService) Snapshot(ctx context.Context, owner model.CartOwner) (model.Cart, error) {
	lines, err := dbHelper.GetCartLines(ctx, s.db, owner, false)
	if err != nil {
		return model.Cart{}, apperr.Internal(err, "failed to read cart")
	}
	return model.SummarizeCart(lines), nil
}

// MergeGuest moves a guest session's cart into the user's cart.
func (s *CartService) MergeGuest(ctx context.Context, userID int64, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := dbHelper.MergeGuestCart(ctx, tx, userID, sessionID); err != nil {
			return apperr.Internal(err, "failed to merge guest cart")
		}
		return nil
	})
}
