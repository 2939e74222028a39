package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartStatus tracks whether a cart can still be turned into an order.
type CartStatus string

const (
	CartStatusOpen       CartStatus = "open"
	CartStatusCheckedOut CartStatus = "checked_out"
)

// LineItem is one course offering staged in a cart.
type LineItem struct {
	CourseOfferedID string  `json:"courseOfferedId"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}

// Cart is a staged purchase. An owner has at most one open cart.
type Cart struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Items     []LineItem
	Bill      float64
	Status    CartStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeBill returns the sum of quantity times price over items.
func ComputeBill(items []LineItem) float64 {
	var bill float64
	for _, item := range items {
		bill += float64(item.Quantity) * item.Price
	}

	return bill
}
