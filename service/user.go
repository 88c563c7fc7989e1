package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/identity"
	"local_mart/model"
)

const emailConstraint = "users_email_key"

type UserService struct {
	db *sqlx.DB
}

func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{db: db}
}

// principalFor lifts a stored user into the caller of a request.
func principalFor(user model.User) (model.Principal, error) {
	if !user.IsActive {
		return model.Principal{}, apperr.Forbidden("account is deactivated")
	}
	account, err := model.NewAccount(user.ID, user.Role, user.ApprovalStatus)
	if err != nil {
		return model.Principal{}, apperr.Internal(err, "inconsistent account")
	}
	return model.Principal{User: user, Account: account}, nil
}

// SignIn records a verified identity. An existing row with the same e-mail
// and no external id is linked instead of creating a duplicate.
func (s *UserService) SignIn(ctx context.Context, id identity.Identity) (model.Principal, error) {
	var user model.User
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := dbHelper.LinkUserByEmail(ctx, tx, id.ExternalID, id.Email); err != nil {
			return apperr.Internal(err, "failed to link user")
		}
		var err error
		user, err = dbHelper.UpsertUserByExternalID(ctx, tx, id.ExternalID, id.Email, id.Name)
		if database.IsUniqueViolation(err, emailConstraint) {
			return apperr.Conflict("email %s belongs to another account", id.Email)
		}
		if err != nil {
			return apperr.Internal(err, "failed to save user")
		}
		return nil
	})
	if txErr != nil {
		return model.Principal{}, txErr
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Debug("user signed in")
	return principalFor(user)
}

// Resolve finds the user behind a verified identity, creating it on first use.
func (s *UserService) Resolve(ctx context.Context, id identity.Identity) (model.Principal, error) {
	user, err := dbHelper.GetUserByExternalID(ctx, s.db, id.ExternalID)
	if database.IsNoRows(err) {
		return s.SignIn(ctx, id)
	}
	if err != nil {
		return model.Principal{}, apperr.Internal(err, "failed to load user")
	}
	return principalFor(user)
}

// Get loads an active user with its role details.
func (s *UserService) Get(ctx context.Context, userID int64) (model.AccountView, error) {
	user, err := dbHelper.GetUserByID(ctx, s.db, userID)
	if database.IsNoRows(err) {
		return model.AccountView{}, apperr.NotFound("user %d not found", userID)
	}
	if err != nil {
		return model.AccountView{}, apperr.Internal(err, "failed to load user")
	}
	principal, err := principalFor(user)
	if err != nil {
		return model.AccountView{}, err
	}
	return principal.View(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, body model.UpdateProfileRequest) (model.Principal, error) {
	user, err := dbHelper.UpdateUserProfile(ctx, s.db, userID, body)
	if database.IsNoRows(err) {
		return model.Principal{}, apperr.NotFound("user %d not found", userID)
	}
	if err != nil {
		return model.Principal{}, apperr.Internal(err, "failed to update profile")
	}
	return principalFor(user)
}
