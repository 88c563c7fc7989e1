package service

import (
	"fmt"
	"time"

	"github.com/teris-io/shortid"
)

// OrderNumberGenerator produces a new order number for a customer.
type OrderNumberGenerator interface {
	Next(customerID int64) (string, error)
}

// ShortIDNumbers builds numbers as PREFIX-<unix millis>-<customer>-<shortid>.
// The orders_order_number_key constraint stays the authority on uniqueness.
type ShortIDNumbers struct {
	Prefix string
	Now    func() time.Time
}

func (g ShortIDNumbers) Next(customerID int64) (string, error) {
	suffix, err := shortid.Generate()
	if err != nil {
		return "", fmt.Errorf("generating order number suffix: %w", err)
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return fmt.Sprintf("%s-%d-%d-%s", g.Prefix, now().UnixMilli(), customerID, suffix), nil
}
