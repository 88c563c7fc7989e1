package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"local_mart/apperr"
)

var hundred = decimal.NewFromInt(100)

// LineTotal is unit price times quantity, exact in fixed point.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// SummarizeCart fills in line totals and the running subtotal.
func SummarizeCart(lines []CartLine) Cart {
	cart := Cart{Items: lines, Subtotal: decimal.Zero}
	if cart.Items == nil {
		cart.Items = make([]CartLine, 0)
	}
	for i := range cart.Items {
		cart.Items[i].LineTotal = LineTotal(cart.Items[i].Price, cart.Items[i].Quantity)
		cart.Subtotal = cart.Subtotal.Add(cart.Items[i].LineTotal)
		cart.ItemCount += cart.Items[i].Quantity
	}
	return cart
}

// CheckQuantity validates quantity against a product's order bounds.
func CheckQuantity(quantity, minQty, maxQty int) error {
	if quantity < 1 {
		return apperr.Validation("quantity must be at least 1")
	}
	if quantity < minQty {
		return apperr.Validation("quantity must be at least %d", minQty)
	}
	if maxQty > 0 && quantity > maxQty {
		return apperr.Validation("quantity must be at most %d", maxQty)
	}
	return nil
}

// CheckCheckoutLine validates a cart line against the live product.
func CheckCheckoutLine(line CartLine) error {
	if !line.IsActive {
		return apperr.Validation("product %q is no longer available", line.Name)
	}
	if err := CheckQuantity(line.Quantity, line.MinOrderQty, line.MaxOrderQty); err != nil {
		return apperr.Validation("product %q: %s", line.Name, apperr.PublicMessage(err))
	}
	if line.Quantity > line.Stock {
		return apperr.Validation("product %q: only %d left in stock", line.Name, line.Stock)
	}
	return nil
}

// DeliveryChargeFor applies an area's flat charge unless the subtotal exceeds
// its free-delivery threshold. A nil area means no area is configured for the
// pincode and delivery is free.
func DeliveryChargeFor(subtotal decimal.Decimal, area *DeliveryArea) decimal.Decimal {
	if area == nil {
		return decimal.Zero
	}
	if area.FreeDeliveryAbove.Valid && subtotal.GreaterThan(area.FreeDeliveryAbove.Decimal) {
		return decimal.Zero
	}
	return area.DeliveryCharge
}

// NormalizePromoCode upper-cases and trims a user supplied code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountFor computes the discount the promo code grants on subtotal. The
// result never exceeds the subtotal.
func (p PromoCode) DiscountFor(subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !p.IsActive || now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return decimal.Zero, apperr.Validation("promo code %s is not valid", p.Code)
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return decimal.Zero, apperr.Validation("promo code %s has reached its usage limit", p.Code)
	}
	if p.MinOrderAmount.Valid && subtotal.LessThan(p.MinOrderAmount.Decimal) {
		return decimal.Zero, apperr.Validation("promo code %s requires a minimum order of %s", p.Code, p.MinOrderAmount.Decimal.StringFixed(2))
	}

	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(p.DiscountValue).Div(hundred).Round(2)
	case DiscountFixed:
		discount = p.DiscountValue
	default:
		return decimal.Zero, apperr.Validation("promo code %s has unknown discount type %q", p.Code, p.DiscountType)
	}
	if p.MaxDiscount.Valid && discount.GreaterThan(p.MaxDiscount.Decimal) {
		discount = p.MaxDiscount.Decimal
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount, nil
}

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
}

// PriceOrder snapshots every cart line at its live price and computes the
// order totals. total = subtotal + deliveryCharge - discount holds exactly.
func PriceOrder(lines []CartLine, area *DeliveryArea, promo *PromoCode, now time.Time) (Totals, []OrderItem, error) {
	if len(lines) == 0 {
		return Totals{}, nil, apperr.ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		if err := CheckCheckoutLine(line); err != nil {
			return Totals{}, nil, err
		}
		total := LineTotal(line.Price, line.Quantity)
		items = append(items, OrderItem{
			ProductID:   line.ProductID,
			SellerID:    line.SellerID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
			TotalPrice:  total,
		})
		subtotal = subtotal.Add(total)
	}

	totals := Totals{
		Subtotal:       subtotal,
		DeliveryCharge: DeliveryChargeFor(subtotal, area),
		Discount:       decimal.Zero,
	}
	if promo != nil {
		discount, err := promo.DiscountFor(subtotal, now)
		if err != nil {
			return Totals{}, nil, err
		}
		totals.Discount = discount
	}
	totals.Total = totals.Subtotal.Add(totals.DeliveryCharge).Sub(totals.Discount)
	return totals, items, nil
}
