package model

import (
	"time"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CartModel mirrors the 'carts' table. The partial unique index keeps one open cart per owner.
type CartModel struct {
	ID        uuid.UUID                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID   uuid.UUID                             `gorm:"type:uuid;not null;uniqueIndex:idx_carts_open_owner,where:status = 'open'"`
	Items     datatypes.JSONType[[]entity.LineItem] `gorm:"type:jsonb;not null"`
	Bill      float64                               `gorm:"type:numeric(12,2);not null"`
	Status    string                                `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner AccountModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// OrderModel mirrors the 'orders' table. cart_id is unique: one order per cart.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_owner_id"`
	CartID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_orders_cart_id"`
	TotalAmount   float64   `gorm:"type:numeric(12,2);not null"`
	OrderStatus   string    `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cart CartModel `gorm:"foreignKey:CartID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
