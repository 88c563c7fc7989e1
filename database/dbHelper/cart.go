package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const cartItemColumns = `id, user_id, session_id, product_id, quantity, created_at, updated_at`

// ownerColumn picks the cart_items column and value identifying owner.
func ownerColumn(owner model.CartOwner) (string, interface{}) {
	if owner.IsGuest() {
		return "session_id", owner.SessionID
	}
	return "user_id", owner.UserID
}

// UpsertCartItem adds quantity to the owner's line for the product, creating
// it when missing. The merged quantity must stay within maxQty; when it would
// not, no row is returned and sql.ErrNoRows is reported.
func UpsertCartItem(ctx context.Context, db sqlx.ExtContext, owner model.CartOwner, productID int64, quantity, maxQty int) (model.CartItem, error) {
	var SQL string
	var args []interface{}
	if owner.IsGuest() {
		SQL = `INSERT INTO cart_items(session_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (session_id, product_id) WHERE session_id IS NOT NULL
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
			WHERE cart_items.quantity + EXCLUDED.quantity <= $4
			RETURNING ` + cartItemColumns
		args = []interface{}{owner.SessionID, productID, quantity, maxQty}
	} else {
		SQL = `INSERT INTO cart_items(user_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, product_id) WHERE user_id IS NOT NULL
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
			WHERE cart_items.quantity + EXCLUDED.quantity <= $4
			RETURNING ` + cartItemColumns
		args = []interface{}{owner.UserID, productID, quantity, maxQty}
	}
	var item model.CartItem
	err := sqlx.GetContext(ctx, db, &item, SQL, args...)
	return item, err
}

// GetCartLine returns one of the owner's lines joined with its product.
func GetCartLine(ctx context.Context, db sqlx.QueryerContext, owner model.CartOwner, cartItemID int64) (model.CartLine, error) {
	column, value := ownerColumn(owner)
	SQL := `SELECT ` + cartLineColumns + `
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.id = $1 AND ci.` + column + ` = $2`
	var line model.CartLine
	err := sqlx.GetContext(ctx, db, &line, SQL, cartItemID, value)
	return line, err
}

func UpdateCartItemQuantity(ctx context.Context, db sqlx.ExtContext, owner model.CartOwner, cartItemID int64, quantity int) (model.CartItem, error) {
	column, value := ownerColumn(owner)
	SQL := `UPDATE cart_items
			SET quantity = $3, updated_at = NOW()
			WHERE id = $1 AND ` + column + ` = $2
			RETURNING ` + cartItemColumns
	var item model.CartItem
	err := sqlx.GetContext(ctx, db, &item, SQL, cartItemID, value, quantity)
	return item, err
}

func DeleteCartItem(ctx context.Context, db sqlx.ExtContext, owner model.CartOwner, cartItemID int64) error {
	column, value := ownerColumn(owner)
	SQL := `DELETE FROM cart_items WHERE id = $1 AND ` + column + ` = $2`
	_, err := db.ExecContext(ctx, SQL, cartItemID, value)
	return err
}

func ClearCart(ctx context.Context, db sqlx.ExtContext, owner model.CartOwner) error {
	column, value := ownerColumn(owner)
	SQL := `DELETE FROM cart_items WHERE ` + column + ` = $1`
	_, err := db.ExecContext(ctx, SQL, value)
	return err
}

const cartLineColumns = `ci.id AS cart_item_id, p.id AS product_id, p.seller_id, p.name, p.name_hindi, p.image, p.unit,
	p.price, ci.quantity, p.stock, p.min_order_qty, p.max_order_qty, p.is_active`

// GetCartLines returns the owner's lines in insertion order, joined with the
// live product rows. With lock the cart rows stay locked until the
// transaction ends.
func GetCartLines(ctx context.Context, db sqlx.QueryerContext, owner model.CartOwner, lock bool) ([]model.CartLine, error) {
	column, value := ownerColumn(owner)
	SQL := `SELECT ` + cartLineColumns + `
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.` + column + ` = $1
			ORDER BY ci.created_at, ci.id`
	if lock {
		SQL += ` FOR UPDATE OF ci`
	}
	list := make([]model.CartLine, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, value)
	return list, err
}

// MergeGuestCart moves a guest session's lines for active products into the
// user's cart. Quantities are raised to the product's min and summed lines are
// clamped to its max. Lines of inactive products are dropped with the session.
func MergeGuestCart(ctx context.Context, db sqlx.ExtContext, userID int64, sessionID string) error {
	SQL := `INSERT INTO cart_items(user_id, product_id, quantity)
			SELECT $1, g.product_id, LEAST(GREATEST(g.quantity, p.min_order_qty), p.max_order_qty)
			FROM cart_items g
			JOIN products p ON p.id = g.product_id
			WHERE g.session_id = $2 AND p.is_active
			ON CONFLICT (user_id, product_id) WHERE user_id IS NOT NULL
			DO UPDATE SET quantity = LEAST(
			                  cart_items.quantity + EXCLUDED.quantity,
			                  (SELECT max_order_qty FROM products WHERE id = EXCLUDED.product_id)),
			              updated_at = NOW()`
	if _, err := db.ExecContext(ctx, SQL, userID, sessionID); err != nil {
		return err
	}
	return ClearCart(ctx, db, model.CartOwner{SessionID: sessionID})
}
