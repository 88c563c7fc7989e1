package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const deliveryBoyColumns = `id, user_id, vehicle_type, vehicle_number, license_number, is_available,
	approval_status, rejection_reason, applied_at, approved_at, rejected_at`

func CreateDeliveryBoy(ctx context.Context, db sqlx.ExtContext, userID int64, body model.DeliveryBoyApplicationRequest) (model.DeliveryBoy, error) {
	SQL := `INSERT INTO delivery_boys(user_id, vehicle_type, vehicle_number, license_number)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + deliveryBoyColumns
	var boy model.DeliveryBoy
	err := sqlx.GetContext(ctx, db, &boy, SQL, userID, body.VehicleType, body.VehicleNumber, body.LicenseNumber)
	return boy, err
}

func DeliveryBoyExistsForUser(ctx context.Context, db sqlx.QueryerContext, userID int64) (bool, error) {
	SQL := `SELECT EXISTS(SELECT 1 FROM delivery_boys WHERE user_id = $1)`
	var exists bool
	err := sqlx.GetContext(ctx, db, &exists, SQL, userID)
	return exists, err
}

func GetDeliveryBoyByUserID(ctx context.Context, db sqlx.QueryerContext, userID int64) (model.DeliveryBoy, error) {
	SQL := `SELECT ` + deliveryBoyColumns + ` FROM delivery_boys WHERE user_id = $1`
	var boy model.DeliveryBoy
	err := sqlx.GetContext(ctx, db, &boy, SQL, userID)
	return boy, err
}

func GetDeliveryBoyForUpdate(ctx context.Context, db sqlx.QueryerContext, deliveryBoyID int64) (model.DeliveryBoy, error) {
	SQL := `SELECT ` + deliveryBoyColumns + ` FROM delivery_boys WHERE id = $1 FOR UPDATE`
	var boy model.DeliveryBoy
	err := sqlx.GetContext(ctx, db, &boy, SQL, deliveryBoyID)
	return boy, err
}

func ListDeliveryBoysByStatus(ctx context.Context, db sqlx.QueryerContext, status model.ApprovalStatus) ([]model.DeliveryBoy, error) {
	SQL := `SELECT ` + deliveryBoyColumns + `
			FROM delivery_boys
			WHERE approval_status = $1
			ORDER BY applied_at DESC, id DESC`
	list := make([]model.DeliveryBoy, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, status)
	return list, err
}

func ApproveDeliveryBoy(ctx context.Context, db sqlx.ExtContext, deliveryBoyID int64) (model.DeliveryBoy, error) {
	SQL := `UPDATE delivery_boys
			SET approval_status = 'approved', approved_at = NOW(), rejection_reason = NULL
			WHERE id = $1
			RETURNING ` + deliveryBoyColumns
	var boy model.DeliveryBoy
	err := sqlx.GetContext(ctx, db, &boy, SQL, deliveryBoyID)
	return boy, err
}

func RejectDeliveryBoy(ctx context.Context, db sqlx.ExtContext, deliveryBoyID int64, reason string) (model.DeliveryBoy, error) {
	SQL := `UPDATE delivery_boys
			SET approval_status = 'rejected', rejected_at = NOW(), rejection_reason = $2
			WHERE id = $1
			RETURNING ` + deliveryBoyColumns
	var boy model.DeliveryBoy
	err := sqlx.GetContext(ctx, db, &boy, SQL, deliveryBoyID, reason)
	return boy, err
}
