package repository

import (
	"context"
	"time"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionTokenNotFound = errors.New("session token not found")

// SessionTokenRepository stores the session set of every account, one row per token.
type SessionTokenRepository interface {
	Add(ctx context.Context, token *entity.SessionToken) error

	// Find returns the token row owned by accountID, or ErrSessionTokenNotFound.
	Find(ctx context.Context, accountID, tokenID uuid.UUID) (*entity.SessionToken, error)

	// Remove deletes one token and reports whether a row was deleted.
	Remove(ctx context.Context, accountID, tokenID uuid.UUID) (bool, error)

	// RemoveExpired deletes the tokens of accountID that expired before cutoff.
	RemoveExpired(ctx context.Context, accountID uuid.UUID, cutoff time.Time) (int64, error)

	// RemoveAll empties the session set of accountID and returns the number of rows deleted.
	RemoveAll(ctx context.Context, accountID uuid.UUID) (int64, error)
}
