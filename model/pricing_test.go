package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(productID int64, price string, qty int) CartLine {
	return CartLine{
		CartItemID:  productID * 10,
		ProductID:   productID,
		SellerID:    7,
		Name:        "product",
		Price:       dec(price),
		Quantity:    qty,
		Stock:       100,
		MinOrderQty: 1,
		MaxOrderQty: 20,
		IsActive:    true,
	}
}

func TestPriceOrderExampleScenario(t *testing.T) {
	area := &DeliveryArea{Pincode: "110001", DeliveryCharge: dec("20.00")}

	totals, items, err := PriceOrder([]CartLine{line(1, "50.00", 2)}, area, nil, time.Now())
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("100.00")))
	assert.True(t, totals.DeliveryCharge.Equal(dec("20.00")))
	assert.True(t, totals.Discount.Equal(decimal.Zero))
	assert.True(t, totals.Total.Equal(dec("120.00")))
	require.Len(t, items, 1)
	assert.True(t, items[0].TotalPrice.Equal(dec("100.00")))
	assert.True(t, items[0].UnitPrice.Equal(dec("50.00")))
}

func TestPriceOrderTotalsIdentity(t *testing.T) {
	lines := []CartLine{line(1, "19.99", 3), line(2, "0.10", 7), line(3, "249.50", 1)}
	promo := &PromoCode{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: dec("10"),
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		IsActive:      true,
	}
	area := &DeliveryArea{DeliveryCharge: dec("15.00")}

	totals, items, err := PriceOrder(lines, area, promo, time.Now())
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range items {
		assert.True(t, item.TotalPrice.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.TotalPrice)
	}
	assert.True(t, sum.Equal(totals.Subtotal))
	assert.True(t, totals.Subtotal.Equal(dec("310.17")))
	assert.True(t, totals.Discount.Equal(dec("31.02")))
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.DeliveryCharge).Sub(totals.Discount)))
}

func TestPriceOrderEmptyCart(t *testing.T) {
	_, _, err := PriceOrder(nil, nil, nil, time.Now())
	assert.True(t, errors.Is(err, apperr.ErrEmptyCart))
}

func TestPriceOrderRejectsInvalidLines(t *testing.T) {
	inactive := line(1, "10.00", 1)
	inactive.IsActive = false
	_, _, err := PriceOrder([]CartLine{inactive}, nil, nil, time.Now())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	tooMany := line(2, "10.00", 21)
	_, _, err = PriceOrder([]CartLine{tooMany}, nil, nil, time.Now())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	noStock := line(3, "10.00", 5)
	noStock.Stock = 4
	_, _, err = PriceOrder([]CartLine{noStock}, nil, nil, time.Now())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestDeliveryChargeFor(t *testing.T) {
	area := &DeliveryArea{
		DeliveryCharge:    dec("30.00"),
		FreeDeliveryAbove: decimal.NewNullDecimal(dec("500.00")),
	}
	assert.True(t, DeliveryChargeFor(dec("499.99"), area).Equal(dec("30.00")))
	assert.True(t, DeliveryChargeFor(dec("500.00"), area).Equal(dec("30.00")))
	assert.True(t, DeliveryChargeFor(dec("500.01"), area).Equal(decimal.Zero))
	assert.True(t, DeliveryChargeFor(dec("1000"), nil).Equal(decimal.Zero))
}

func TestPromoDiscountFor(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	limit := 5
	base := PromoCode{
		Code:          "FLAT50",
		DiscountType:  DiscountFixed,
		DiscountValue: dec("50"),
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		IsActive:      true,
		UsageLimit:    &limit,
	}

	d, err := base.DiscountFor(dec("200"), now)
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("50")))

	d, err = base.DiscountFor(dec("30"), now)
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("30")), "discount is capped at subtotal")

	capped := base
	capped.DiscountType = DiscountPercentage
	capped.DiscountValue = dec("50")
	capped.MaxDiscount = decimal.NewNullDecimal(dec("75"))
	d, err = capped.DiscountFor(dec("400"), now)
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("75")))

	expired := base
	expired.ValidUntil = now.Add(-time.Minute)
	_, err = expired.DiscountFor(dec("200"), now)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	used := base
	used.UsedCount = 5
	_, err = used.DiscountFor(dec("200"), now)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	minimum := base
	minimum.MinOrderAmount = decimal.NewNullDecimal(dec("250"))
	_, err = minimum.DiscountFor(dec("200"), now)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSummarizeCart(t *testing.T) {
	cart := SummarizeCart([]CartLine{line(1, "50.00", 2), line(2, "12.25", 4)})
	assert.True(t, cart.Subtotal.Equal(dec("149.00")))
	assert.Equal(t, 6, cart.ItemCount)
	assert.True(t, cart.Items[1].LineTotal.Equal(dec("49.00")))

	empty := SummarizeCart(nil)
	assert.NotNil(t, empty.Items)
	assert.True(t, empty.Subtotal.IsZero())
}

func TestCheckQuantity(t *testing.T) {
	assert.Error(t, CheckQuantity(0, 1, 10))
	assert.Error(t, CheckQuantity(2, 3, 10))
	assert.Error(t, CheckQuantity(11, 1, 10))
	assert.NoError(t, CheckQuantity(10, 1, 10))
}
