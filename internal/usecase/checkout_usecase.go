package usecase

import (
	"context"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput is a checkout request of an authenticated owner.
type CheckoutInput struct {
	OwnerID       uuid.UUID
	Items         []entity.LineItem
	PaymentMethod entity.PaymentMethod // Optional, defaults to credit_card.
}

// CheckoutOutput holds the records committed by a checkout.
type CheckoutOutput struct {
	Cart  *entity.Cart
	Order *entity.Order
}

// CheckoutUsecase turns carts into orders.
type CheckoutUsecase interface {
	// CreateCart opens the owner's single cart.
	CreateCart(ctx context.Context, ownerID uuid.UUID, items []entity.LineItem) (*entity.Cart, error)

	// CreateOrder binds an order to the owner's cart and closes the cart.
	CreateOrder(ctx context.Context, ownerID, cartID uuid.UUID, method entity.PaymentMethod) (*entity.Order, error)

	// Checkout creates a cart and its order atomically. Failures are *errors.CheckoutError.
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)

	GetOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Order, error)
	OrderReceiptQR(ctx context.Context, ownerID, orderID uuid.UUID) ([]byte, error)
}
