package redis

import (
	"context"
	"encoding/json"
	"time"

	"coursemart/config"
	"coursemart/internal/domain/entity"
	"coursemart/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const pendingAccountKeySpace = "pending_account:"

// pendingAccountRepository stores each registration under its own key with a native TTL.
type pendingAccountRepository struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewPendingAccountRepository is the constructor for pendingAccountRepository.
func NewPendingAccountRepository(client *redis.Client, cfg *config.Config) repository.PendingAccountRepository {
	return newPendingAccountRepository(client, cfg.Redis.KeyPrefix)
}

func newPendingAccountRepository(client redis.Cmdable, keyPrefix string) *pendingAccountRepository {
	return &pendingAccountRepository{client: client, keyPrefix: keyPrefix}
}

func (repo *pendingAccountRepository) key(email string) string {
	return repo.keyPrefix + pendingAccountKeySpace + email
}

func (repo *pendingAccountRepository) Save(ctx context.Context, pending *entity.PendingAccount, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.Errorf("pending account ttl must be positive, got %s", ttl)
	}

	payload, err := json.Marshal(pending)
	if err != nil {
		return errors.Wrap(err, "failed to encode pending account")
	}

	if err := repo.client.Set(ctx, repo.key(pending.Email), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store pending account")
	}

	return nil
}

func (repo *pendingAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.PendingAccount, error) {
	payload, err := repo.client.Get(ctx, repo.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrPendingAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to load pending account")
	}

	var pending entity.PendingAccount
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, errors.Wrap(err, "failed to decode pending account")
	}

	return &pending, nil
}

func (repo *pendingAccountRepository) Delete(ctx context.Context, email string) error {
	if err := repo.client.Del(ctx, repo.key(email)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete pending account")
	}

	return nil
}
