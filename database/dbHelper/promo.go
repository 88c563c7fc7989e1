package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const promoColumns = `id, code, description, discount_type, discount_value, min_order_amount, max_discount,
	usage_limit, used_count, valid_from, valid_until, is_active`

// GetPromoCodeForUpdate locks the promo row so concurrent checkouts see a
// consistent used_count.
func GetPromoCodeForUpdate(ctx context.Context, db sqlx.QueryerContext, code string) (model.PromoCode, error) {
	SQL := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1 FOR UPDATE`
	var promo model.PromoCode
	err := sqlx.GetContext(ctx, db, &promo, SQL, code)
	return promo, err
}

// RedeemPromoCode bumps the usage counter unless the limit is reached.
func RedeemPromoCode(ctx context.Context, db sqlx.ExtContext, promoID int64) (int64, error) {
	SQL := `UPDATE promo_codes
			SET used_count = used_count + 1
			WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`
	result, err := db.ExecContext(ctx, SQL, promoID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func UpsertPromoCode(ctx context.Context, db sqlx.ExtContext, promo model.PromoCode) error {
	SQL := `INSERT INTO promo_codes(code, description, discount_type, discount_value, min_order_amount, max_discount,
			                        usage_limit, valid_from, valid_until, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (code)
			DO UPDATE SET description = EXCLUDED.description,
			              discount_type = EXCLUDED.discount_type,
			              discount_value = EXCLUDED.discount_value,
			              min_order_amount = EXCLUDED.min_order_amount,
			              max_discount = EXCLUDED.max_discount,
			              usage_limit = EXCLUDED.usage_limit,
			              valid_from = EXCLUDED.valid_from,
			              valid_until = EXCLUDED.valid_until,
			              is_active = EXCLUDED.is_active`
	_, err := db.ExecContext(ctx, SQL, promo.Code, promo.Description, promo.DiscountType, promo.DiscountValue,
		promo.MinOrderAmount, promo.MaxDiscount, promo.UsageLimit, promo.ValidFrom, promo.ValidUntil, promo.IsActive)
	return err
}
