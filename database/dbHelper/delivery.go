package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const deliveryAreaColumns = `id, area_name, pincode, city, delivery_charge, free_delivery_above, is_active`

func GetActiveDeliveryArea(ctx context.Context, db sqlx.QueryerContext, pincode string) (model.DeliveryArea, error) {
	SQL := `SELECT ` + deliveryAreaColumns + ` FROM delivery_areas WHERE pincode = $1 AND is_active`
	var area model.DeliveryArea
	err := sqlx.GetContext(ctx, db, &area, SQL, pincode)
	return area, err
}

func UpsertDeliveryArea(ctx context.Context, db sqlx.ExtContext, body model.DeliveryAreaRequest) (model.DeliveryArea, error) {
	SQL := `INSERT INTO delivery_areas(area_name, pincode, city, delivery_charge, free_delivery_above)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (pincode)
			DO UPDATE SET area_name = EXCLUDED.area_name,
			              city = EXCLUDED.city,
			              delivery_charge = EXCLUDED.delivery_charge,
			              free_delivery_above = EXCLUDED.free_delivery_above,
			              is_active = TRUE
			RETURNING ` + deliveryAreaColumns
	var area model.DeliveryArea
	err := sqlx.GetContext(ctx, db, &area, SQL, body.AreaName, body.Pincode, body.City, body.DeliveryCharge, body.FreeDeliveryAbove)
	return area, err
}
