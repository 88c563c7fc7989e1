package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"local_mart/apperr"
	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/metrics"
	"local_mart/model"
)

const (
	sellerUserConstraint      = "sellers_user_id_key"
	deliveryBoyUserConstraint = "delivery_boys_user_id_key"
)

// OnboardingService runs seller and delivery boy applications through
// pending -> approved | rejected. Every decision updates the application and
// the user's role in one transaction.
type OnboardingService struct {
	db *sqlx.DB
}

func NewOnboardingService(db *sqlx.DB) *OnboardingService {
	return &OnboardingService{db: db}
}

// checkApplicant allows applications from plain customers only.
func checkApplicant(principal model.Principal) error {
	if _, ok := principal.Account.(model.CustomerAccount); !ok {
		return apperr.Conflict("user is already registered as %s", principal.Account.Role())
	}
	return nil
}

func (s *OnboardingService) ApplySeller(ctx context.Context, principal model.Principal, body model.SellerApplicationRequest) (model.Seller, error) {
	var seller model.Seller
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		exists, err := dbHelper.SellerExistsForUser(ctx, tx, principal.UserID())
		if err != nil {
			return apperr.Internal(err, "failed to check seller application")
		}
		if exists {
			return apperr.Conflict("seller application already exists")
		}
		if err := checkApplicant(principal); err != nil {
			return err
		}

		seller, err = dbHelper.CreateSeller(ctx, tx, principal.UserID(), body)
		if database.IsUniqueViolation(err, sellerUserConstraint) {
			return apperr.Conflict("seller application already exists")
		}
		if err != nil {
			return apperr.Internal(err, "failed to create seller application")
		}
		if err := dbHelper.SetUserRole(ctx, tx, principal.UserID(), model.RoleSeller, model.ApprovalPending); err != nil {
			return apperr.Internal(err, "failed to update user role")
		}
		return nil
	})
	if txErr != nil {
		return model.Seller{}, txErr
	}
	logrus.WithFields(logrus.Fields{"seller_id": seller.ID, "user_id": seller.UserID}).Info("seller application received")
	return seller, nil
}

func (s *OnboardingService) ApproveSeller(ctx context.Context, adminID, sellerID int64) (model.Seller, error) {
	return s.decideSeller(ctx, adminID, sellerID, model.ApprovalApproved, "")
}

// RejectSeller requires a non-empty reason; without one nothing is written.
func (s *OnboardingService) RejectSeller(ctx context.Context, adminID, sellerID int64, reason string) (model.Seller, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.Seller{}, apperr.Validation("rejection reason is required")
	}
	return s.decideSeller(ctx, adminID, sellerID, model.ApprovalRejected, reason)
}

func (s *OnboardingService) decideSeller(ctx context.Context, adminID, sellerID int64, decision model.ApprovalStatus, reason string) (model.Seller, error) {
	var seller model.Seller
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		current, err := dbHelper.GetSellerForUpdate(ctx, tx, sellerID)
		if database.IsNoRows(err) {
			return apperr.NotFound("seller %d not found", sellerID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load seller")
		}
		if current.ApprovalStatus != model.ApprovalPending {
			return apperr.InvalidTransition("seller application is already %s", current.ApprovalStatus)
		}

		if decision == model.ApprovalApproved {
			seller, err = dbHelper.ApproveSeller(ctx, tx, sellerID)
		} else {
			seller, err = dbHelper.RejectSeller(ctx, tx, sellerID, reason)
		}
		if err != nil {
			return apperr.Internal(err, "failed to update seller")
		}
		if err := dbHelper.SetUserRole(ctx, tx, seller.UserID, model.RoleSeller, decision); err != nil {
			return apperr.Internal(err, "failed to update user role")
		}
		return nil
	})
	if txErr != nil {
		return model.Seller{}, txErr
	}
	metrics.OnboardingDecisions.WithLabelValues("seller", string(decision)).Inc()
	logrus.WithFields(logrus.Fields{
		"seller_id": sellerID,
		"admin_id":  adminID,
		"decision":  decision,
	}).Info("seller application decided")
	return seller, nil
}

func (s *OnboardingService) GetSellerForUser(ctx context.Context, userID int64) (model.Seller, error) {
	seller, err := dbHelper.GetSellerByUserID(ctx, s.db, userID)
	if database.IsNoRows(err) {
		return model.Seller{}, apperr.NotFound("seller profile not found")
	}
	if err != nil {
		return model.Seller{}, apperr.Internal(err, "failed to load seller")
	}
	return seller, nil
}

func (s *OnboardingService) ListSellers(ctx context.Context, status model.ApprovalStatus) ([]model.Seller, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown approval status %q", status)
	}
	list, err := dbHelper.ListSellersByStatus(ctx, s.db, status)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list sellers")
	}
	return list, nil
}

func (s *OnboardingService) ApplyDeliveryBoy(ctx context.Context, principal model.Principal, body model.DeliveryBoyApplicationRequest) (model.DeliveryBoy, error) {
	var boy model.DeliveryBoy
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		exists, err := dbHelper.DeliveryBoyExistsForUser(ctx, tx, principal.UserID())
		if err != nil {
			return apperr.Internal(err, "failed to check delivery boy application")
		}
		if exists {
			return apperr.Conflict("delivery boy application already exists")
		}
		if err := checkApplicant(principal); err != nil {
			return err
		}

		boy, err = dbHelper.CreateDeliveryBoy(ctx, tx, principal.UserID(), body)
		if database.IsUniqueViolation(err, deliveryBoyUserConstraint) {
			return apperr.Conflict("delivery boy application already exists")
		}
		if err != nil {
			return apperr.Internal(err, "failed to create delivery boy application")
		}
		if err := dbHelper.SetUserRole(ctx, tx, principal.UserID(), model.RoleDeliveryBoy, model.ApprovalPending); err != nil {
			return apperr.Internal(err, "failed to update user role")
		}
		return nil
	})
	if txErr != nil {
		return model.DeliveryBoy{}, txErr
	}
	logrus.WithFields(logrus.Fields{"delivery_boy_id": boy.ID, "user_id": boy.UserID}).Info("delivery boy application received")
	return boy, nil
}

func (s *OnboardingService) ApproveDeliveryBoy(ctx context.Context, adminID, deliveryBoyID int64) (model.DeliveryBoy, error) {
	return s.decideDeliveryBoy(ctx, adminID, deliveryBoyID, model.ApprovalApproved, "")
}

func (s *OnboardingService) RejectDeliveryBoy(ctx context.Context, adminID, deliveryBoyID int64, reason string) (model.DeliveryBoy, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.DeliveryBoy{}, apperr.Validation("rejection reason is required")
	}
	return s.decideDeliveryBoy(ctx, adminID, deliveryBoyID, model.ApprovalRejected, reason)
}

func (s *OnboardingService) decideDeliveryBoy(ctx context.Context, adminID, deliveryBoyID int64, decision model.ApprovalStatus, reason string) (model.DeliveryBoy, error) {
	var boy model.DeliveryBoy
	txErr := database.Tx(ctx, s.db, func(tx *sqlx.Tx) error {
		current, err := dbHelper.GetDeliveryBoyForUpdate(ctx, tx, deliveryBoyID)
		if database.IsNoRows(err) {
			return apperr.NotFound("delivery boy %d not found", deliveryBoyID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load delivery boy")
		}
		if current.ApprovalStatus != model.ApprovalPending {
			return apperr.InvalidTransition("delivery boy application is already %s", current.ApprovalStatus)
		}

		if decision == model.ApprovalApproved {
			boy, err = dbHelper.ApproveDeliveryBoy(ctx, tx, deliveryBoyID)
		} else {
			boy, err = dbHelper.RejectDeliveryBoy(ctx, tx, deliveryBoyID, reason)
		}
		if err != nil {
			return apperr.Internal(err, "failed to update delivery boy")
		}
		if err := dbHelper.SetUserRole(ctx, tx, boy.UserID, model.RoleDeliveryBoy, decision); err != nil {
			return apperr.Internal(err, "failed to update user role")
		}
		return nil
	})
	if txErr != nil {
		return model.DeliveryBoy{}, txErr
	}
	metrics.OnboardingDecisions.WithLabelValues("delivery_boy", string(decision)).Inc()
	logrus.WithFields(logrus.Fields{
		"delivery_boy_id": deliveryBoyID,
		"admin_id":        adminID,
		"decision":        decision,
	}).Info("delivery boy application decided")
	return boy, nil
}

func (s *OnboardingService) ListDeliveryBoys(ctx context.Context, status model.ApprovalStatus) ([]model.DeliveryBoy, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown approval status %q", status)
	}
	list, err := dbHelper.ListDeliveryBoysByStatus(ctx, s.db, status)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list delivery boys")
	}
	return list, nil
}
