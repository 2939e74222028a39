package handler

import (
	"context"

	"coursemart/internal/domain/entity"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type registrationUsecaseMock struct{ mock.Mock }

func (m *registrationUsecaseMock) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.PendingReceipt, error) {
	args := m.Called(ctx, input)
	receipt, _ := args.Get(0).(*usecase.PendingReceipt)

	return receipt, args.Error(1)
}

func (m *registrationUsecaseMock) VerifyEmail(ctx context.Context, token string) (*usecase.VerifiedReceipt, error) {
	args := m.Called(ctx, token)
	receipt, _ := args.Get(0).(*usecase.VerifiedReceipt)

	return receipt, args.Error(1)
}

type authUsecaseMock struct{ mock.Mock }

func (m *authUsecaseMock) LoginWithPassword(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.LoginOutput)

	return output, args.Error(1)
}

func (m *authUsecaseMock) Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, accountID)
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

type federatedUsecaseMock struct{ mock.Mock }

func (m *federatedUsecaseMock) Initiate(ctx context.Context) (*usecase.AuthorizationRequest, error) {
	args := m.Called(ctx)
	req, _ := args.Get(0).(*usecase.AuthorizationRequest)

	return req, args.Error(1)
}

func (m *federatedUsecaseMock) CompleteLogin(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, code)
	output, _ := args.Get(0).(*usecase.LoginOutput)

	return output, args.Error(1)
}

type sessionUsecaseMock struct{ mock.Mock }

func (m *sessionUsecaseMock) Issue(ctx context.Context, account *entity.Account) (*usecase.IssuedSession, error) {
	args := m.Called(ctx, account)
	session, _ := args.Get(0).(*usecase.IssuedSession)

	return session, args.Error(1)
}

func (m *sessionUsecaseMock) Validate(ctx context.Context, token string) (*usecase.AuthenticatedSession, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*usecase.AuthenticatedSession)

	return session, args.Error(1)
}

func (m *sessionUsecaseMock) Revoke(ctx context.Context, account *entity.Account, token string) error {
	return m.Called(ctx, account, token).Error(0)
}

func (m *sessionUsecaseMock) RevokeAll(ctx context.Context, account *entity.Account) (int64, error) {
	args := m.Called(ctx, account)

	return args.Get(0).(int64), args.Error(1)
}

type checkoutUsecaseMock struct{ mock.Mock }

func (m *checkoutUsecaseMock) CreateCart(ctx context.Context, ownerID uuid.UUID, items []entity.LineItem) (*entity.Cart, error) {
	args := m.Called(ctx, ownerID, items)
	cart, _ := args.Get(0).(*entity.Cart)

	return cart, args.Error(1)
}

func (m *checkoutUsecaseMock) CreateOrder(ctx context.Context, ownerID, cartID uuid.UUID, method entity.PaymentMethod) (*entity.Order, error) {
	args := m.Called(ctx, ownerID, cartID, method)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *checkoutUsecaseMock) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.CheckoutOutput)

	return output, args.Error(1)
}

func (m *checkoutUsecaseMock) GetOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, ownerID, orderID)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *checkoutUsecaseMock) OrderReceiptQR(ctx context.Context, ownerID, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, ownerID, orderID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}
