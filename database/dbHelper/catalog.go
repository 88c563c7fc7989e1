package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const productColumns = `id, seller_id, category_id, name, name_hindi, description, description_hindi, price, original_price,
	image, unit, brand, stock, min_order_qty, max_order_qty, is_active, created_at, updated_at`

func ListCategories(ctx context.Context, db sqlx.QueryerContext) ([]model.Category, error) {
	SQL := `SELECT id, name, name_hindi, slug, description, image, is_active, sort_order
			FROM categories
			WHERE is_active
			ORDER BY sort_order, name`
	list := make([]model.Category, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL)
	return list, err
}

// UpsertCategory creates a category or refreshes the one with the same slug.
func UpsertCategory(ctx context.Context, db sqlx.ExtContext, body model.CategoryRequest) (model.Category, error) {
	SQL := `INSERT INTO categories(name, name_hindi, slug, description, image, sort_order)
			VALUES ($1, $2, LOWER($3), $4, $5, $6)
			ON CONFLICT (slug)
			DO UPDATE SET name = EXCLUDED.name,
			              name_hindi = EXCLUDED.name_hindi,
			              description = EXCLUDED.description,
			              image = EXCLUDED.image,
			              sort_order = EXCLUDED.sort_order,
			              is_active = TRUE
			RETURNING id, name, name_hindi, slug, description, image, is_active, sort_order`
	var category model.Category
	err := sqlx.GetContext(ctx, db, &category, SQL, body.Name, body.NameHindi, body.Slug, body.Description, body.Image, body.SortOrder)
	return category, err
}

func ListProducts(ctx context.Context, db sqlx.QueryerContext, filter model.ProductFilter) ([]model.Product, error) {
	SQL := `SELECT ` + productColumns + `
			FROM products
			WHERE is_active
			  AND ($1 = 0 OR category_id = $1)
			  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR name_hindi ILIKE '%' || $2 || '%')
			ORDER BY name, id`
	list := make([]model.Product, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, filter.CategoryID, filter.Search)
	return list, err
}

func GetProduct(ctx context.Context, db sqlx.QueryerContext, productID int64) (model.Product, error) {
	SQL := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var product model.Product
	err := sqlx.GetContext(ctx, db, &product, SQL, productID)
	return product, err
}

func CreateProduct(ctx context.Context, db sqlx.ExtContext, sellerID int64, body model.ProductRequest) (model.Product, error) {
	SQL := `INSERT INTO products(seller_id, category_id, name, name_hindi, description, description_hindi, price,
			                     original_price, image, unit, brand, stock, min_order_qty, max_order_qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING ` + productColumns
	var product model.Product
	err := sqlx.GetContext(ctx, db, &product, SQL, sellerID, body.CategoryID, body.Name, body.NameHindi, body.Description,
		body.DescriptionHindi, body.Price, body.OriginalPrice, body.Image, body.Unit, body.Brand, body.Stock,
		body.MinOrderQty, body.MaxOrderQty)
	return product, err
}

// UpdateSellerProduct applies a partial update to a product owned by the
// seller. sql.ErrNoRows means the product does not exist or is not theirs.
func UpdateSellerProduct(ctx context.Context, db sqlx.ExtContext, sellerID, productID int64, body model.ProductUpdateRequest) (model.Product, error) {
	SQL := `UPDATE products
			SET price = COALESCE($3, price),
			    stock = COALESCE($4, stock),
			    min_order_qty = COALESCE($5, min_order_qty),
			    max_order_qty = COALESCE($6, max_order_qty),
			    is_active = COALESCE($7, is_active),
			    updated_at = NOW()
			WHERE id = $1 AND seller_id = $2
			RETURNING ` + productColumns
	var product model.Product
	err := sqlx.GetContext(ctx, db, &product, SQL, productID, sellerID, body.Price, body.Stock,
		body.MinOrderQty, body.MaxOrderQty, body.IsActive)
	return product, err
}

func DeactivateSellerProduct(ctx context.Context, db sqlx.ExtContext, sellerID, productID int64) (int64, error) {
	SQL := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND seller_id = $2`
	result, err := db.ExecContext(ctx, SQL, productID, sellerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DecrementStock takes quantity off the product's stock. Zero rows affected
// means the stock no longer covers the quantity.
func DecrementStock(ctx context.Context, db sqlx.ExtContext, productID int64, quantity int) (int64, error) {
	SQL := `UPDATE products
			SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2`
	result, err := db.ExecContext(ctx, SQL, productID, quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// RestoreStockForOrder puts every item of a cancelled order back on the shelf.
func RestoreStockForOrder(ctx context.Context, db sqlx.ExtContext, orderID int64) error {
	SQL := `UPDATE products p
			SET stock = p.stock + oi.quantity, updated_at = NOW()
			FROM order_items oi
			WHERE oi.order_id = $1 AND oi.product_id = p.id`
	_, err := db.ExecContext(ctx, SQL, orderID)
	return err
}
