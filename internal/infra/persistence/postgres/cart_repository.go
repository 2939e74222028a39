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
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements repository.CartRepository.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Create inserts cart. idx_carts_open_owner rejects a second open cart for the owner.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	cartM := fromCartDomain(cart)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCartAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *cartRepository) FindOpenByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "owner_id = ? AND status = ?", ownerID, string(entity.CartStatusOpen))
}

func (repo *cartRepository) MarkCheckedOut(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(entity.CartStatusCheckedOut),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to close cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

func (repo *cartRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Cart, error) {
	var cartM model.CartModel
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCartDomain(&cartM), nil
}

func toCartDomain(data *model.CartModel) *entity.Cart {
	return &entity.Cart{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Items:     data.Items.Data(),
		Bill:      data.Bill,
		Status:    entity.CartStatus(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCartDomain(data *entity.Cart) *model.CartModel {
	status := data.Status
	if status == "" {
		status = entity.CartStatusOpen
	}

	return &model.CartModel{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Items:     datatypes.NewJSONType(data.Items),
		Bill:      data.Bill,
		Status:    string(status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
