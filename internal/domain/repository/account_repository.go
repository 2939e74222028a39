// Package repository defines the persistence contracts of the domain.
package repository

import (
	"context"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository persists permanent accounts.
type AccountRepository interface {
	// Create inserts account and fills its ID when unset.
	// Returns ErrAccountAlreadyExists when the email is taken.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID returns the account with its live session set loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail looks up an account by its normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// ExistsByEmail reports whether an account uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update saves the profile fields of account. Sessions are not touched.
	Update(ctx context.Context, account *entity.Account) error
}
