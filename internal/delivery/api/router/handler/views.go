package handler

import (
	"time"

	"coursemart/internal/domain/entity"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
)

// AccountView is the public projection of an account. Hashes and session
// tokens never leave the service.
type AccountView struct {
	ID           uuid.UUID   `json:"id"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Role         entity.Role `json:"role"`
	IsVerified   bool        `json:"isVerified"`
	GoogleSignIn bool        `json:"googleSignIn"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func newAccountView(account *entity.Account) *AccountView {
	return &AccountView{
		ID:           account.ID,
		FullName:     account.FullName,
		Email:        account.Email,
		Role:         account.Role,
		IsVerified:   account.IsVerified,
		GoogleSignIn: account.GoogleSignIn,
		CreatedAt:    account.CreatedAt,
	}
}

// SessionView carries a freshly issued bearer token.
type SessionView struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Account   *AccountView `json:"account"`
}

func newSessionView(output *usecase.LoginOutput) *SessionView {
	return &SessionView{
		Token:     output.Session.Token,
		TokenType: "Bearer",
		ExpiresAt: output.Session.ExpiresAt,
		Account:   newAccountView(output.Account),
	}
}

type CartView struct {
	ID        uuid.UUID         `json:"id"`
	OwnerID   uuid.UUID         `json:"ownerId"`
	Items     []entity.LineItem `json:"cartItems"`
	Bill      float64           `json:"bill"`
	Status    entity.CartStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

func newCartView(cart *entity.Cart) *CartView {
	return &CartView{
		ID:        cart.ID,
		OwnerID:   cart.OwnerID,
		Items:     cart.Items,
		Bill:      cart.Bill,
		Status:    cart.Status,
		CreatedAt: cart.CreatedAt,
	}
}

type OrderView struct {
	ID            uuid.UUID            `json:"id"`
	OwnerID       uuid.UUID            `json:"ownerId"`
	CartID        uuid.UUID            `json:"cartId"`
	TotalAmount   float64              `json:"totalAmount"`
	OrderStatus   entity.OrderStatus   `json:"orderStatus"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func newOrderView(order *entity.Order) *OrderView {
	return &OrderView{
		ID:            order.ID,
		OwnerID:       order.OwnerID,
		CartID:        order.CartID,
		TotalAmount:   order.TotalAmount,
		OrderStatus:   order.OrderStatus,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	}
}
