package model

import (
	"github.com/shopspring/decimal"
)

type LoginRequestBody struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=80"`
	Phone   *string `json:"phone" validate:"omitempty,min=10,max=15,numeric"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=80"`
	Pincode *string `json:"pincode" validate:"omitempty,numeric,len=6"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type CheckoutRequest struct {
	PaymentMethod        PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cod online upi"`
	DeliveryAddress      DeliveryAddress `json:"deliveryAddress"`
	DeliveryInstructions *string         `json:"deliveryInstructions" validate:"omitempty,max=500"`
	PromoCode            *string         `json:"promoCode" validate:"omitempty,max=40"`
	IdempotencyKey       string          `json:"-"`
}

type TransitionRequest struct {
	Status       OrderStatus `json:"status" validate:"required,oneof=placed confirmed packed out_for_delivery delivered cancelled"`
	Message      *string     `json:"message" validate:"omitempty,max=255"`
	MessageHindi *string     `json:"messageHindi" validate:"omitempty,max=255"`
	Location     *string     `json:"location" validate:"omitempty,max=255"`
}

type AssignDeliveryBoyRequest struct {
	DeliveryBoyID int64 `json:"deliveryBoyId" validate:"required,gt=0"`
}

type SellerApplicationRequest struct {
	StoreName     string  `json:"storeName" validate:"required,min=2,max=120"`
	StoreType     string  `json:"storeType" validate:"required,max=40"`
	Address       string  `json:"address" validate:"required,max=255"`
	City          string  `json:"city" validate:"required,max=80"`
	Pincode       string  `json:"pincode" validate:"required,numeric,len=6"`
	Phone         string  `json:"phone" validate:"required,min=10,max=15,numeric"`
	LicenseNumber *string `json:"licenseNumber" validate:"omitempty,max=60"`
	GSTNumber     *string `json:"gstNumber" validate:"omitempty,len=15,alphanum"`
}

type DeliveryBoyApplicationRequest struct {
	VehicleType   VehicleType `json:"vehicleType" validate:"required,oneof=bike cycle auto"`
	VehicleNumber *string     `json:"vehicleNumber" validate:"omitempty,max=20"`
	LicenseNumber *string     `json:"licenseNumber" validate:"omitempty,max=60"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ReviewRequest struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	OrderID   int64   `json:"orderId" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"required"`
	Comment   *string `json:"comment" validate:"omitempty,max=1000"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=80" yaml:"name"`
	NameHindi   *string `json:"nameHindi" validate:"omitempty,max=80" yaml:"name_hindi"`
	Slug        string  `json:"slug" validate:"required,max=80" yaml:"slug"`
	Description *string `json:"description" validate:"omitempty,max=500" yaml:"description"`
	Image       *string `json:"image" validate:"omitempty,url" yaml:"image"`
	SortOrder   int     `json:"sortOrder" validate:"gte=0" yaml:"sort_order"`
}

type ProductRequest struct {
	CategoryID       int64               `json:"categoryId" validate:"required,gt=0"`
	Name             string              `json:"name" validate:"required,max=120"`
	NameHindi        *string             `json:"nameHindi" validate:"omitempty,max=120"`
	Description      *string             `json:"description" validate:"omitempty,max=2000"`
	DescriptionHindi *string             `json:"descriptionHindi" validate:"omitempty,max=2000"`
	Price            decimal.Decimal     `json:"price"`
	OriginalPrice    decimal.NullDecimal `json:"originalPrice"`
	Image            string              `json:"image" validate:"required"`
	Unit             string              `json:"unit" validate:"required,max=20"`
	Brand            *string             `json:"brand" validate:"omitempty,max=80"`
	Stock            int                 `json:"stock" validate:"gte=0"`
	MinOrderQty      int                 `json:"minOrderQty" validate:"omitempty,gte=1"`
	MaxOrderQty      int                 `json:"maxOrderQty" validate:"omitempty,gte=1"`
}

type ProductUpdateRequest struct {
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	MinOrderQty *int             `json:"minOrderQty" validate:"omitempty,gte=1"`
	MaxOrderQty *int             `json:"maxOrderQty" validate:"omitempty,gte=1"`
	IsActive    *bool            `json:"isActive"`
}

type DeliveryAreaRequest struct {
	AreaName          string              `json:"areaName" validate:"required,max=120"`
	Pincode           string              `json:"pincode" validate:"required,numeric,len=6"`
	City              string              `json:"city" validate:"required,max=80"`
	DeliveryCharge    decimal.Decimal     `json:"deliveryCharge"`
	FreeDeliveryAbove decimal.NullDecimal `json:"freeDeliveryAbove"`
}
