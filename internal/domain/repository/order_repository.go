package repository

import (
	"context"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists for cart")
)

// OrderRepository persists orders. The store keeps at most one order per cart.
type OrderRepository interface {
	// Create inserts order; ErrOrderAlreadyExists when the cart already has one.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	FindByCartID(ctx context.Context, cartID uuid.UUID) (*entity.Order, error)
}
