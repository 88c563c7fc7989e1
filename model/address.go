package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DeliveryAddress is stored as a jsonb document on the order row.
type DeliveryAddress struct {
	FullName     string `json:"fullName" validate:"required,max=120"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `json:"addressLine2,omitempty" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"required,max=80"`
	Pincode      string `json:"pincode" validate:"required,numeric,len=6"`
	Landmark     string `json:"landmark,omitempty" validate:"omitempty,max=120"`
	Phone        string `json:"phone" validate:"required,min=10,max=15,numeric"`
}

// Value encodes the address as a JSON string; lib/pq sends []byte as bytea.
func (a DeliveryAddress) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *DeliveryAddress) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = DeliveryAddress{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("delivery address: unsupported source type %T", src)
	}
}
