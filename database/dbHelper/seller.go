package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const sellerColumns = `id, user_id, store_name, store_type, address, city, pincode, phone, license_number, gst_number,
	approval_status, rejection_reason, applied_at, approved_at, rejected_at`

func CreateSeller(ctx context.Context, db sqlx.ExtContext, userID int64, body model.SellerApplicationRequest) (model.Seller, error) {
	SQL := `INSERT INTO sellers(user_id, store_name, store_type, address, city, pincode, phone, license_number, gst_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + sellerColumns
	var seller model.Seller
	err := sqlx.GetContext(ctx, db, &seller, SQL, userID, body.StoreName, body.StoreType, body.Address,
		body.City, body.Pincode, body.Phone, body.LicenseNumber, body.GSTNumber)
	return seller, err
}

func SellerExistsForUser(ctx context.Context, db sqlx.QueryerContext, userID int64) (bool, error) {
	SQL := `SELECT EXISTS(SELECT 1 FROM sellers WHERE user_id = $1)`
	var exists bool
	err := sqlx.GetContext(ctx, db, &exists, SQL, userID)
	return exists, err
}

func GetSellerByUserID(ctx context.Context, db sqlx.QueryerContext, userID int64) (model.Seller, error) {
	SQL := `SELECT ` + sellerColumns + ` FROM sellers WHERE user_id = $1`
	var seller model.Seller
	err := sqlx.GetContext(ctx, db, &seller, SQL, userID)
	return seller, err
}

// GetSellerForUpdate locks the seller row for the rest of the transaction.
func GetSellerForUpdate(ctx context.Context, db sqlx.QueryerContext, sellerID int64) (model.Seller, error) {
	SQL := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1 FOR UPDATE`
	var seller model.Seller
	err := sqlx.GetContext(ctx, db, &seller, SQL, sellerID)
	return seller, err
}

func ListSellersByStatus(ctx context.Context, db sqlx.QueryerContext, status model.ApprovalStatus) ([]model.Seller, error) {
	SQL := `SELECT ` + sellerColumns + `
			FROM sellers
			WHERE approval_status = $1
			ORDER BY applied_at DESC, id DESC`
	list := make([]model.Seller, 0)
	err := sqlx.SelectContext(ctx, db, &list, SQL, status)
	return list, err
}

func ApproveSeller(ctx context.Context, db sqlx.ExtContext, sellerID int64) (model.Seller, error) {
	SQL := `UPDATE sellers
			SET approval_status = 'approved', approved_at = NOW(), rejection_reason = NULL
			WHERE id = $1
			RETURNING ` + sellerColumns
	var seller model.Seller
	err := sqlx.GetContext(ctx, db, &seller, SQL, sellerID)
	return seller, err
}

func RejectSeller(ctx context.Context, db sqlx.ExtContext, sellerID int64, reason string) (model.Seller, error) {
	SQL := `UPDATE sellers
			SET approval_status = 'rejected', rejected_at = NOW(), rejection_reason = $2
			WHERE id = $1
			RETURNING ` + sellerColumns
	var seller model.Seller
	err := sqlx.GetContext(ctx, db, &seller, SQL, sellerID, reason)
	return seller, err
}
