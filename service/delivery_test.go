package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
	"local_mart/model"
)

var deliveryAreaCols = []string{"id", "area_name", "pincode", "city", "delivery_charge", "free_delivery_above", "is_active"}

func TestUpsertDeliveryAreaRejectsNegativeAmounts(t *testing.T) {
	db, mock := newMock(t)
	svc := NewDeliveryAreaService(db, AreaTable{})

	_, err := svc.Upsert(context.Background(), model.DeliveryAreaRequest{
		AreaName: "Malviya Nagar", Pincode: "302017", City: "Jaipur",
		DeliveryCharge: decimal.RequireFromString("-5"),
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Upsert(context.Background(), model.DeliveryAreaRequest{
		AreaName: "Malviya Nagar", Pincode: "302017", City: "Jaipur",
		DeliveryCharge:    decimal.RequireFromString("20"),
		FreeDeliveryAbove: decimal.NewNullDecimal(decimal.RequireFromString("-1")),
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDeliveryArea(t *testing.T) {
	db, mock := newMock(t)
	svc := NewDeliveryAreaService(db, AreaTable{})

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (pincode)")).
		WillReturnRows(sqlmock.NewRows(deliveryAreaCols).AddRow(3, "Malviya Nagar", "302017", "Jaipur", "20.00", "499.00", true))

	area, err := svc.Upsert(context.Background(), model.DeliveryAreaRequest{
		AreaName: "Malviya Nagar", Pincode: "302017", City: "Jaipur",
		DeliveryCharge:    decimal.RequireFromString("20"),
		FreeDeliveryAbove: decimal.NewNullDecimal(decimal.RequireFromString("499")),
	})
	require.NoError(t, err)
	assert.True(t, area.DeliveryCharge.Equal(decimal.RequireFromString("20")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteUnknownPincode(t *testing.T) {
	db, _ := newMock(t)
	svc := NewDeliveryAreaService(db, &fakeAreas{})

	_, err := svc.Quote(context.Background(), "110001")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
