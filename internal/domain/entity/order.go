package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodFlutterwave  PaymentMethod = "flutterwave"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodFlutterwave, PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

// Order is a committed purchase bound to exactly one cart.
type Order struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	CartID        uuid.UUID
	TotalAmount   float64 // Copied from the cart bill when the order is saved.
	OrderStatus   OrderStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder builds a pending order for cart.
func NewOrder(cart *Cart, method PaymentMethod, now time.Time) *Order {
	return &Order{
		ID:            uuid.New(),
		OwnerID:       cart.OwnerID,
		CartID:        cart.ID,
		TotalAmount:   cart.Bill,
		OrderStatus:   OrderStatusPending,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
