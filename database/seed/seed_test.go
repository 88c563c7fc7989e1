package seed

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/model"
)

const sample = `
categories:
  - name: Staples
    slug: staples
    sort_order: 3
delivery_areas:
  - area_name: Malviya Nagar
    pincode: "302017"
    city: Jaipur
    delivery_charge: "20.00"
    free_delivery_above: "499.00"
promo_codes:
  - code: " welcome50 "
    discount_type: fixed
    discount_value: "50.00"
    min_order_amount: "300.00"
    valid_from: "2024-01-01T00:00:00+05:30"
    valid_until: "2025-12-31T23:59:59+05:30"
`

func TestParseAndConvert(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Categories, 1)
	assert.Equal(t, "staples", f.Categories[0].Slug)

	area, err := f.DeliveryAreas[0].Request()
	require.NoError(t, err)
	assert.True(t, area.DeliveryCharge.Equal(decimal.RequireFromString("20")))
	assert.True(t, area.FreeDeliveryAbove.Valid)

	promo, err := f.PromoCodes[0].Model()
	require.NoError(t, err)
	assert.Equal(t, "WELCOME50", promo.Code)
	assert.Equal(t, model.DiscountFixed, promo.DiscountType)
	assert.True(t, promo.IsActive)
	assert.False(t, promo.MaxDiscount.Valid)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("categories:\n  - name: Staples\n    slugg: staples\n"))
	assert.Error(t, err)
}

func TestPromoValidation(t *testing.T) {
	base := PromoCode{
		Code: "X", DiscountType: "fixed", DiscountValue: "10",
		ValidFrom: "2024-01-01T00:00:00Z", ValidUntil: "2024-02-01T00:00:00Z",
	}
	_, err := base.Model()
	require.NoError(t, err)

	bad := base
	bad.DiscountType = "bogo"
	_, err = bad.Model()
	assert.Error(t, err)

	bad = base
	bad.DiscountValue = "0"
	_, err = bad.Model()
	assert.Error(t, err)

	bad = base
	bad.ValidUntil = bad.ValidFrom
	_, err = bad.Model()
	assert.Error(t, err)
}

func TestApplyUpsertsInOneTransaction(t *testing.T) {
	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer rawDB.Close()
	db := sqlx.NewDb(rawDB, "postgres")

	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO delivery_areas")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO promo_codes")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, Apply(context.Background(), db, f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyValidatesBeforeWriting(t *testing.T) {
	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer rawDB.Close()

	f := File{DeliveryAreas: []DeliveryArea{{AreaName: "X", Pincode: "302017", City: "Jaipur", DeliveryCharge: "abc"}}}
	assert.Error(t, Apply(context.Background(), sqlx.NewDb(rawDB, "postgres"), f))
	assert.NoError(t, mock.ExpectationsWereMet())
}
