package repository

import (
	"context"
	"time"

	"coursemart/internal/domain/entity"

	"github.com/pkg/errors"
)

var ErrPendingAccountNotFound = errors.New("pending account not found")

// PendingAccountRepository holds registrations awaiting verification.
// Records expire natively in the store after ttl.
type PendingAccountRepository interface {
	// Save stores pending under its email, replacing any previous record and restarting its ttl.
	Save(ctx context.Context, pending *entity.PendingAccount, ttl time.Duration) error

	// FindByEmail returns ErrPendingAccountNotFound once the record expired or was removed.
	FindByEmail(ctx context.Context, email string) (*entity.PendingAccount, error)

	Delete(ctx context.Context, email string) error
}
