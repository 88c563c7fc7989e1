package dbHelper

import (
	"context"

	"github.com/jmoiron/sqlx"

	"local_mart/model"
)

const userColumns = `id, external_id, email, name, phone, address, city, pincode, role, approval_status, is_active, created_at, updated_at`

// LinkUserByEmail attaches an identity-provider id to an existing user row
// that was created before the user ever signed in.
func LinkUserByEmail(ctx context.Context, db sqlx.ExtContext, externalID, email string) error {
	SQL := `UPDATE users
			SET external_id = $1, updated_at = NOW()
			WHERE email = TRIM(LOWER($2))
			  AND external_id IS NULL`
	_, err := db.ExecContext(ctx, SQL, externalID, email)
	return err
}

// UpsertUserByExternalID creates the user on first sign in and refreshes the
// e-mail on later ones. The display name is only filled when still empty.
func UpsertUserByExternalID(ctx context.Context, db sqlx.ExtContext, externalID, email string, name *string) (model.User, error) {
	SQL := `INSERT INTO users(external_id, email, name)
			VALUES ($1, TRIM(LOWER($2)), $3)
			ON CONFLICT (external_id)
			DO UPDATE SET email = EXCLUDED.email,
			              name = COALESCE(users.name, EXCLUDED.name),
			              updated_at = NOW()
			RETURNING ` + userColumns
	var user model.User
	err := sqlx.GetContext(ctx, db, &user, SQL, externalID, email, name)
	return user, err
}

func GetUserByID(ctx context.Context, db sqlx.QueryerContext, userID int64) (model.User, error) {
	SQL := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active`
	var user model.User
	err := sqlx.GetContext(ctx, db, &user, SQL, userID)
	return user, err
}

func UpdateUserProfile(ctx context.Context, db sqlx.ExtContext, userID int64, body model.UpdateProfileRequest) (model.User, error) {
	SQL := `UPDATE users
			SET name = COALESCE($2, name),
			    phone = COALESCE($3, phone),
			    address = COALESCE($4, address),
			    city = COALESCE($5, city),
			    pincode = COALESCE($6, pincode),
			    updated_at = NOW()
			WHERE id = $1 AND is_active
			RETURNING ` + userColumns
	var user model.User
	err := sqlx.GetContext(ctx, db, &user, SQL, userID, body.Name, body.Phone, body.Address, body.City, body.Pincode)
	return user, err
}

// SetUserRole moves a user to role with the given approval status. Admin rows
// are never demoted through onboarding.
func SetUserRole(ctx context.Context, db sqlx.ExtContext, userID int64, role model.Role, approval model.ApprovalStatus) error {
	SQL := `UPDATE users
			SET role = $2, approval_status = $3, updated_at = NOW()
			WHERE id = $1 AND role <> 'admin'`
	_, err := db.ExecContext(ctx, SQL, userID, role, approval)
	return err
}

func GetUserByExternalID(ctx context.Context, db sqlx.QueryerContext, externalID string) (model.User, error) {
	SQL := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	var user model.User
	err := sqlx.GetContext(ctx, db, &user, SQL, externalID)
	return user, err
}
