// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
)

// IssuedSession is a freshly minted bearer token.
type IssuedSession struct {
	Token     string
	TokenID   uuid.UUID
	ExpiresAt time.Time
}

// AuthenticatedSession is the result of a successful token validation.
type AuthenticatedSession struct {
	Account *entity.Account
	TokenID uuid.UUID
}

// SessionUsecase issues, validates and revokes session tokens. A token is
// valid only while it is signed, unexpired and present in its account's session set.
type SessionUsecase interface {
	Issue(ctx context.Context, account *entity.Account) (*IssuedSession, error)
	Validate(ctx context.Context, token string) (*AuthenticatedSession, error)

	// Revoke removes token from the account's set. Revoking an absent token is a no-op.
	Revoke(ctx context.Context, account *entity.Account, token string) error

	// RevokeAll empties the account's set and returns how many sessions ended.
	RevokeAll(ctx context.Context, account *entity.Account) (int64, error)
}
