package repository

import (
	"context"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartAlreadyExists = errors.New("open cart already exists for owner")
)

// CartRepository persists carts. The store keeps at most one open cart per owner.
type CartRepository interface {
	// Create inserts cart; ErrCartAlreadyExists when the owner already has an open cart.
	Create(ctx context.Context, cart *entity.Cart) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindOpenByOwner returns the owner's open cart, or ErrCartNotFound.
	FindOpenByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Cart, error)

	// MarkCheckedOut closes the cart so the owner may open another one.
	MarkCheckedOut(ctx context.Context, id uuid.UUID) error
}
