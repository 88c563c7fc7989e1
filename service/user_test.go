package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
	"local_mart/identity"
	"local_mart/model"
)

func TestSignInLinksAndUpserts(t *testing.T) {
	db, mock := newMock(t)
	svc := NewUserService(db)
	name := "Asha"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("AND external_id IS NULL")).
		WithArgs("ext-1", "asha@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (external_id)")).
		WithArgs("ext-1", "asha@example.com", "Asha").
		WillReturnRows(userRows(7, model.RoleCustomer, model.ApprovalApproved))
	mock.ExpectCommit()

	principal, err := svc.SignIn(context.Background(), identity.Identity{ExternalID: "ext-1", Email: "asha@example.com", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.UserID())
	assert.Equal(t, model.CustomerAccount{ID: 7}, principal.Account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignInEmailTakenByOtherAccount(t *testing.T) {
	db, mock := newMock(t)
	svc := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("AND external_id IS NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (external_id)")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	mock.ExpectRollback()

	_, err := svc.SignIn(context.Background(), identity.Identity{ExternalID: "ext-2", Email: "asha@example.com"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveExistingSeller(t *testing.T) {
	db, mock := newMock(t)
	svc := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE external_id = $1")).
		WithArgs("ext-1").
		WillReturnRows(userRows(7, model.RoleSeller, model.ApprovalPending))

	principal, err := svc.Resolve(context.Background(), identity.Identity{ExternalID: "ext-1", Email: "asha@example.com"})
	require.NoError(t, err)
	seller, ok := principal.Account.(model.SellerAccount)
	require.True(t, ok)
	assert.False(t, seller.CanSell())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCreatesUnknownUser(t *testing.T) {
	db, mock := newMock(t)
	svc := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE external_id = $1")).
		WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("AND external_id IS NULL")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (external_id)")).
		WillReturnRows(userRows(7, model.RoleCustomer, model.ApprovalApproved))
	mock.ExpectCommit()

	principal, err := svc.Resolve(context.Background(), identity.Identity{ExternalID: "ext-1", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.UserID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser(t *testing.T) {
	db, mock := newMock(t)
	svc := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND is_active")).
		WithArgs(7).
		WillReturnRows(userRows(7, model.RoleSeller, model.ApprovalPending))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND is_active")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(userCols))

	view, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, view.Seller)
	assert.Equal(t, model.ApprovalPending, view.Seller.ApprovalStatus)

	_, err = svc.Get(context.Background(), 8)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
