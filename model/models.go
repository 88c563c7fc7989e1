package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string
type ApprovalStatus string
type PaymentMethod string
type PaymentStatus string
type OrderStatus string
type DiscountType string
type VehicleType string

const (
	RoleCustomer    Role = "customer"
	RoleSeller      Role = "seller"
	RoleDeliveryBoy Role = "delivery_boy"
	RoleAdmin       Role = "admin"
)

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodUPI    PaymentMethod = "upi"
)

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

const (
	VehicleBike  VehicleType = "bike"
	VehicleCycle VehicleType = "cycle"
	VehicleAuto  VehicleType = "auto"
)

type User struct {
	ID             int64          `json:"id" db:"id"`
	ExternalID     *string        `json:"-" db:"external_id"`
	Email          string         `json:"email" db:"email"`
	Name           *string        `json:"name,omitempty" db:"name"`
	Phone          *string        `json:"phone,omitempty" db:"phone"`
	Address        *string        `json:"address,omitempty" db:"address"`
	City           *string        `json:"city,omitempty" db:"city"`
	Pincode        *string        `json:"pincode,omitempty" db:"pincode"`
	Role           Role           `json:"role" db:"role"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	IsActive       bool           `json:"isActive" db:"is_active"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

type Seller struct {
	ID              int64          `json:"id" db:"id"`
	UserID          int64          `json:"userId" db:"user_id"`
	StoreName       string         `json:"storeName" db:"store_name"`
	StoreType       string         `json:"storeType" db:"store_type"`
	Address         string         `json:"address" db:"address"`
	City            string         `json:"city" db:"city"`
	Pincode         string         `json:"pincode" db:"pincode"`
	Phone           string         `json:"phone" db:"phone"`
	LicenseNumber   *string        `json:"licenseNumber,omitempty" db:"license_number"`
	GSTNumber       *string        `json:"gstNumber,omitempty" db:"gst_number"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	RejectionReason *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AppliedAt       time.Time      `json:"appliedAt" db:"applied_at"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty" db:"approved_at"`
	RejectedAt      *time.Time     `json:"rejectedAt,omitempty" db:"rejected_at"`
}

type DeliveryBoy struct {
	ID              int64          `json:"id" db:"id"`
	UserID          int64          `json:"userId" db:"user_id"`
	VehicleType     VehicleType    `json:"vehicleType" db:"vehicle_type"`
	VehicleNumber   *string        `json:"vehicleNumber,omitempty" db:"vehicle_number"`
	LicenseNumber   *string        `json:"licenseNumber,omitempty" db:"license_number"`
	IsAvailable     bool           `json:"isAvailable" db:"is_available"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	RejectionReason *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AppliedAt       time.Time      `json:"appliedAt" db:"applied_at"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty" db:"approved_at"`
	RejectedAt      *time.Time     `json:"rejectedAt,omitempty" db:"rejected_at"`
}

type Category struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	NameHindi   *string `json:"nameHindi,omitempty" db:"name_hindi"`
	Slug        string  `json:"slug" db:"slug"`
	Description *string `json:"description,omitempty" db:"description"`
	Image       *string `json:"image,omitempty" db:"image"`
	IsActive    bool    `json:"isActive" db:"is_active"`
	SortOrder   int     `json:"sortOrder" db:"sort_order"`
}

type Product struct {
	ID               int64               `json:"id" db:"id"`
	SellerID         int64               `json:"sellerId" db:"seller_id"`
	CategoryID       int64               `json:"categoryId" db:"category_id"`
	Name             string              `json:"name" db:"name"`
	NameHindi        *string             `json:"nameHindi,omitempty" db:"name_hindi"`
	Description      *string             `json:"description,omitempty" db:"description"`
	DescriptionHindi *string             `json:"descriptionHindi,omitempty" db:"description_hindi"`
	Price            decimal.Decimal     `json:"price" db:"price"`
	OriginalPrice    decimal.NullDecimal `json:"originalPrice" db:"original_price"`
	Image            string              `json:"image" db:"image"`
	Unit             string              `json:"unit" db:"unit"`
	Brand            *string             `json:"brand,omitempty" db:"brand"`
	Stock            int                 `json:"stock" db:"stock"`
	MinOrderQty      int                 `json:"minOrderQty" db:"min_order_qty"`
	MaxOrderQty      int                 `json:"maxOrderQty" db:"max_order_qty"`
	IsActive         bool                `json:"isActive" db:"is_active"`
	CreatedAt        time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time           `json:"updatedAt" db:"updated_at"`
}

type ProductFilter struct {
	CategoryID int64
	Search     string
}

type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id"`
	SessionID *string   `json:"sessionId,omitempty" db:"session_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CartOwner identifies a cart: an authenticated user or a guest session.
type CartOwner struct {
	UserID    int64
	SessionID string
}

func (o CartOwner) IsGuest() bool {
	return o.UserID == 0
}

// CartLine is a cart item joined with the live product row.
type CartLine struct {
	CartItemID  int64           `json:"cartItemId" db:"cart_item_id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	SellerID    int64           `json:"sellerId" db:"seller_id"`
	Name        string          `json:"name" db:"name"`
	NameHindi   *string         `json:"nameHindi,omitempty" db:"name_hindi"`
	Image       string          `json:"image" db:"image"`
	Unit        string          `json:"unit" db:"unit"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Stock       int             `json:"-" db:"stock"`
	MinOrderQty int             `json:"minOrderQty" db:"min_order_qty"`
	MaxOrderQty int             `json:"maxOrderQty" db:"max_order_qty"`
	IsActive    bool            `json:"isActive" db:"is_active"`
	LineTotal   decimal.Decimal `json:"lineTotal" db:"-"`
}

type Cart struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID                    int64           `json:"id" db:"id"`
	OrderNumber           string          `json:"orderNumber" db:"order_number"`
	CustomerID            int64           `json:"customerId" db:"customer_id"`
	DeliveryBoyID         *int64          `json:"deliveryBoyId,omitempty" db:"delivery_boy_id"`
	Subtotal              decimal.Decimal `json:"subtotal" db:"subtotal"`
	DeliveryCharge        decimal.Decimal `json:"deliveryCharge" db:"delivery_charge"`
	Discount              decimal.Decimal `json:"discount" db:"discount"`
	Total                 decimal.Decimal `json:"total" db:"total"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Status                OrderStatus     `json:"status" db:"status"`
	DeliveryAddress       DeliveryAddress `json:"deliveryAddress" db:"delivery_address"`
	DeliveryInstructions  *string         `json:"deliveryInstructions,omitempty" db:"delivery_instructions"`
	PromoCode             *string         `json:"promoCode,omitempty" db:"promo_code"`
	IdempotencyKey        *string         `json:"-" db:"idempotency_key"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty" db:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty" db:"actual_delivery_time"`
	CreatedAt             time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the price snapshot of one cart line taken at checkout.
type OrderItem struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"orderId" db:"order_id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	SellerID    int64           `json:"sellerId" db:"seller_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
}

type OrderTracking struct {
	ID           int64       `json:"id" db:"id"`
	OrderID      int64       `json:"orderId" db:"order_id"`
	Status       OrderStatus `json:"status" db:"status"`
	Message      *string     `json:"message,omitempty" db:"message"`
	MessageHindi *string     `json:"messageHindi,omitempty" db:"message_hindi"`
	Location     *string     `json:"location,omitempty" db:"location"`
	UpdatedBy    *int64      `json:"updatedBy,omitempty" db:"updated_by"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

type OrderDetail struct {
	Order
	Items    []OrderItem     `json:"items"`
	Tracking []OrderTracking `json:"tracking,omitempty"`
}

type Review struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	ProductID  int64     `json:"productId" db:"product_id"`
	OrderID    int64     `json:"orderId" db:"order_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type ProductReviews struct {
	ProductID int64           `json:"productId"`
	Average   decimal.Decimal `json:"average"`
	Count     int             `json:"count"`
	Reviews   []Review        `json:"reviews"`
}

type DeliveryArea struct {
	ID                int64               `json:"id" db:"id"`
	AreaName          string              `json:"areaName" db:"area_name"`
	Pincode           string              `json:"pincode" db:"pincode"`
	City              string              `json:"city" db:"city"`
	DeliveryCharge    decimal.Decimal     `json:"deliveryCharge" db:"delivery_charge"`
	FreeDeliveryAbove decimal.NullDecimal `json:"freeDeliveryAbove" db:"free_delivery_above"`
	IsActive          bool                `json:"isActive" db:"is_active"`
}

type PromoCode struct {
	ID             int64               `json:"id" db:"id"`
	Code           string              `json:"code" db:"code"`
	Description    string              `json:"description" db:"description"`
	DiscountType   DiscountType        `json:"discountType" db:"discount_type"`
	DiscountValue  decimal.Decimal     `json:"discountValue" db:"discount_value"`
	MinOrderAmount decimal.NullDecimal `json:"minOrderAmount" db:"min_order_amount"`
	MaxDiscount    decimal.NullDecimal `json:"maxDiscount" db:"max_discount"`
	UsageLimit     *int                `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount      int                 `json:"usedCount" db:"used_count"`
	ValidFrom      time.Time           `json:"validFrom" db:"valid_from"`
	ValidUntil     time.Time           `json:"validUntil" db:"valid_until"`
	IsActive       bool                `json:"isActive" db:"is_active"`
}
