package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/model"
)

// DeliveryAreaLookup resolves the delivery area serving a pincode. A nil
// area with a nil error means no area is configured.
type DeliveryAreaLookup interface {
	Lookup(ctx context.Context, db sqlx.QueryerContext, pincode string) (*model.DeliveryArea, error)
}

// AreaTable looks areas up in the delivery_areas table.
type AreaTable struct{}

func (AreaTable) Lookup(ctx context.Context, db sqlx.QueryerContext, pincode string) (*model.DeliveryArea, error) {
	area, err := dbHelper.GetActiveDeliveryArea(ctx, db, pincode)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

type DeliveryAreaService struct {
	db    *sqlx.DB
	areas DeliveryAreaLookup
}

func NewDeliveryAreaService(db *sqlx.DB, areas DeliveryAreaLookup) *DeliveryAreaService {
	return &DeliveryAreaService{db: db, areas: areas}
}

// Quote returns the area serving pincode.
func (s *DeliveryAreaService) Quote(ctx context.Context, pincode string) (model.DeliveryArea, error) {
	area, err := s.areas.Lookup(ctx, s.db, pincode)
	if err != nil {
		return model.DeliveryArea{}, apperr.Internal(err, "failed to look up delivery area")
	}
	if area == nil {
		return model.DeliveryArea{}, apperr.NotFound("no delivery to pincode %s", pincode)
	}
	return *area, nil
}

func (s *DeliveryAreaService) Upsert(ctx context.Context, body model.DeliveryAreaRequest) (model.DeliveryArea, error) {
	if body.DeliveryCharge.IsNegative() {
		return model.DeliveryArea{}, apperr.Validation("delivery charge must not be negative")
	}
	if body.FreeDeliveryAbove.Valid && body.FreeDeliveryAbove.Decimal.IsNegative() {
		return model.DeliveryArea{}, apperr.Validation("free delivery threshold must not be negative")
	}
	area, err := dbHelper.UpsertDeliveryArea(ctx, s.db, body)
	if err != nil {
		return model.DeliveryArea{}, apperr.Internal(err, "failed to save delivery area")
	}
	return area, nil
}
