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
	"gorm.io/gorm/clause"
)

// accountRepository implements repository.AccountRepository.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAccountAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID returns the account and its unexpired sessions.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("SessionTokens", "expires_at > ?", time.Now()).
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail looks the account up by its unique email. Sessions are not loaded.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

func (repo *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, errors.WithStack(err)
	}

	return count > 0, nil
}

// Update saves profile and federation fields.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"full_name":      accountM.FullName,
			"password_hash":  accountM.PasswordHash,
			"role":           accountM.Role,
			"is_verified":    accountM.IsVerified,
			"google_sign_in": accountM.GoogleSignIn,
			"google_id":      accountM.GoogleID,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrAccountAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	account := &entity.Account{
		ID:           data.ID,
		FullName:     data.FullName,
		Email:        data.Email,
		Role:         entity.Role(data.Role),
		IsVerified:   data.IsVerified,
		GoogleSignIn: data.GoogleSignIn,
		Sessions:     make(entity.SessionSet, len(data.SessionTokens)),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.PasswordHash != nil {
		account.PasswordHash = *data.PasswordHash
	}
	if data.GoogleID != nil {
		account.GoogleID = *data.GoogleID
	}
	for i := range data.SessionTokens {
		token := toSessionTokenDomain(&data.SessionTokens[i])
		account.Sessions[token.ID] = token
	}

	return account
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	accountM := &model.AccountModel{
		ID:           data.ID,
		FullName:     data.FullName,
		Email:        data.Email,
		Role:         string(entity.RoleOrDefault(data.Role)),
		IsVerified:   data.IsVerified,
		GoogleSignIn: data.GoogleSignIn,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.PasswordHash != "" {
		accountM.PasswordHash = &data.PasswordHash
	}
	if data.GoogleID != "" {
		accountM.GoogleID = &data.GoogleID
	}

	return accountM
}
