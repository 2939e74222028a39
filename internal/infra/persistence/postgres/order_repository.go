package postgres

import (
	"context"

	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/repository"
	"coursemart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements repository.OrderRepository.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts order. idx_orders_cart_id rejects a second order for the same cart.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOrderAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *orderRepository) FindByCartID(ctx context.Context, cartID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "cart_id = ?", cartID)
}

func (repo *orderRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toOrderDomain(&orderM), nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		CartID:        data.CartID,
		TotalAmount:   data.TotalAmount,
		OrderStatus:   entity.OrderStatus(data.OrderStatus),
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		PaymentStatus: entity.PaymentStatus(data.PaymentStatus),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		CartID:        data.CartID,
		TotalAmount:   data.TotalAmount,
		OrderStatus:   string(data.OrderStatus),
		PaymentMethod: string(data.PaymentMethod),
		PaymentStatus: string(data.PaymentStatus),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
