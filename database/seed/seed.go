// Package seed loads reference data (categories, delivery areas, promo codes)
// from a YAML file. Every row is upserted, so a file can be applied repeatedly.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"local_mart/database"
	"local_mart/database/dbHelper"
	"local_mart/model"
	"local_mart/utils"
)

type File struct {
	Categories    []model.CategoryRequest `yaml:"categories"`
	DeliveryAreas []DeliveryArea          `yaml:"delivery_areas"`
	PromoCodes    []PromoCode             `yaml:"promo_codes"`
}

// Money values are written as strings so that no float rounding happens
// between the file and the numeric columns.
type DeliveryArea struct {
	AreaName          string `yaml:"area_name"`
	Pincode           string `yaml:"pincode"`
	City              string `yaml:"city"`
	DeliveryCharge    string `yaml:"delivery_charge"`
	FreeDeliveryAbove string `yaml:"free_delivery_above"`
}

type PromoCode struct {
	Code           string `yaml:"code"`
	Description    string `yaml:"description"`
	DiscountType   string `yaml:"discount_type"`
	DiscountValue  string `yaml:"discount_value"`
	MinOrderAmount string `yaml:"min_order_amount"`
	MaxDiscount    string `yaml:"max_discount"`
	UsageLimit     *int   `yaml:"usage_limit"`
	ValidFrom      string `yaml:"valid_from"`
	ValidUntil     string `yaml:"valid_until"`
	Active         *bool  `yaml:"active"`
}

func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding seed file: %w", err)
	}
	return f, nil
}

func optionalDecimal(raw string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (a DeliveryArea) Request() (model.DeliveryAreaRequest, error) {
	charge, err := decimal.NewFromString(a.DeliveryCharge)
	if err != nil {
		return model.DeliveryAreaRequest{}, fmt.Errorf("area %s: delivery_charge: %w", a.Pincode, err)
	}
	threshold, err := optionalDecimal(a.FreeDeliveryAbove)
	if err != nil {
		return model.DeliveryAreaRequest{}, fmt.Errorf("area %s: free_delivery_above: %w", a.Pincode, err)
	}
	req := model.DeliveryAreaRequest{
		AreaName:          a.AreaName,
		Pincode:           a.Pincode,
		City:              a.City,
		DeliveryCharge:    charge,
		FreeDeliveryAbove: threshold,
	}
	if err := utils.ValidateBody(req); err != nil {
		return model.DeliveryAreaRequest{}, fmt.Errorf("area %s: %w", a.Pincode, err)
	}
	if charge.IsNegative() {
		return model.DeliveryAreaRequest{}, fmt.Errorf("area %s: delivery_charge must not be negative", a.Pincode)
	}
	return req, nil
}

func (p PromoCode) Model() (model.PromoCode, error) {
	promo := model.PromoCode{
		Code:         model.NormalizePromoCode(p.Code),
		Description:  p.Description,
		DiscountType: model.DiscountType(p.DiscountType),
		UsageLimit:   p.UsageLimit,
		IsActive:     p.Active == nil || *p.Active,
	}
	if promo.Code == "" {
		return model.PromoCode{}, errors.New("promo code without code")
	}
	if promo.DiscountType != model.DiscountPercentage && promo.DiscountType != model.DiscountFixed {
		return model.PromoCode{}, fmt.Errorf("promo %s: discount_type %q must be percentage or fixed", promo.Code, p.DiscountType)
	}

	var err error
	if promo.DiscountValue, err = decimal.NewFromString(p.DiscountValue); err != nil {
		return model.PromoCode{}, fmt.Errorf("promo %s: discount_value: %w", promo.Code, err)
	}
	if !promo.DiscountValue.IsPositive() {
		return model.PromoCode{}, fmt.Errorf("promo %s: discount_value must be positive", promo.Code)
	}
	if promo.MinOrderAmount, err = optionalDecimal(p.MinOrderAmount); err != nil {
		return model.PromoCode{}, fmt.Errorf("promo %s: min_order_amount: %w", promo.Code, err)
	}
	if promo.MaxDiscount, err = optionalDecimal(p.MaxDiscount); err != nil {
		return model.PromoCode{}, fmt.Errorf("promo %s: max_discount: %w", promo.Code, err)
	}
	if promo.ValidFrom, err = time.Parse(time.RFC3339, p.ValidFrom); err != nil {
		return model.PromoCode{}, fmt.Errorf("promo %s: valid_from: %w", promo.Code, err)
	}
	if promo.ValidUntil, err = time.Parse(time.RFC3339, p.ValidUntil); err != nil {
		return model.PromoCode{}, fmt.Errorf("promo %s: valid_until: %w", promo.Code, err)
	}
	if !promo.ValidUntil.After(promo.ValidFrom) {
		return model.PromoCode{}, fmt.Errorf("promo %s: valid_until must be after valid_from", promo.Code)
	}
	return promo, nil
}

// Apply validates the whole file first and then upserts it in one transaction.
func Apply(ctx context.Context, db *sqlx.DB, f File) error {
	for _, category := range f.Categories {
		if err := utils.ValidateBody(category); err != nil {
			return fmt.Errorf("category %s: %w", category.Slug, err)
		}
	}
	areas := make([]model.DeliveryAreaRequest, 0, len(f.DeliveryAreas))
	for _, a := range f.DeliveryAreas {
		req, err := a.Request()
		if err != nil {
			return err
		}
		areas = append(areas, req)
	}
	promos := make([]model.PromoCode, 0, len(f.PromoCodes))
	for _, p := range f.PromoCodes {
		promo, err := p.Model()
		if err != nil {
			return err
		}
		promos = append(promos, promo)
	}

	return database.Tx(ctx, db, func(tx *sqlx.Tx) error {
		for _, category := range f.Categories {
			if _, err := dbHelper.UpsertCategory(ctx, tx, category); err != nil {
				return fmt.Errorf("upserting category %s: %w", category.Slug, err)
			}
		}
		for _, area := range areas {
			if _, err := dbHelper.UpsertDeliveryArea(ctx, tx, area); err != nil {
				return fmt.Errorf("upserting delivery area %s: %w", area.Pincode, err)
			}
		}
		for _, promo := range promos {
			if err := dbHelper.UpsertPromoCode(ctx, tx, promo); err != nil {
				return fmt.Errorf("upserting promo code %s: %w", promo.Code, err)
			}
		}
		return nil
	})
}
