package postgres

import (
	"context"
	"time"

	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/repository"
	"coursemart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionTokenRepository implements repository.SessionTokenRepository.
// Each token is its own row, so concurrent issue and revoke never overwrite each other.
type sessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository is the constructor for sessionTokenRepository.
func NewSessionTokenRepository(db *gorm.DB) repository.SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

func (repo *sessionTokenRepository) Add(ctx context.Context, token *entity.SessionToken) error {
	tokenM := fromSessionTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store session token")
	}
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

func (repo *sessionTokenRepository) Find(ctx context.Context, accountID, tokenID uuid.UUID) (*entity.SessionToken, error) {
	var tokenM model.SessionTokenModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", tokenID, accountID).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toSessionTokenDomain(&tokenM), nil
}

func (repo *sessionTokenRepository) Remove(ctx context.Context, accountID, tokenID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", tokenID, accountID).
		Delete(&model.SessionTokenModel{})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove session token")
	}

	return result.RowsAffected > 0, nil
}

func (repo *sessionTokenRepository) RemoveExpired(ctx context.Context, accountID uuid.UUID, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("account_id = ? AND expires_at <= ?", accountID, cutoff).
		Delete(&model.SessionTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge expired session tokens")
	}

	return result.RowsAffected, nil
}

func (repo *sessionTokenRepository) RemoveAll(ctx context.Context, accountID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.SessionTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove session tokens")
	}

	return result.RowsAffected, nil
}

func toSessionTokenDomain(data *model.SessionTokenModel) *entity.SessionToken {
	return &entity.SessionToken{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromSessionTokenDomain(data *entity.SessionToken) *model.SessionTokenModel {
	return &model.SessionTokenModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
