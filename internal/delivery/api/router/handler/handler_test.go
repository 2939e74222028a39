package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/validator"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "session-token"

type testServer struct {
	e            *echo.Echo
	registration *registrationUsecaseMock
	auth         *authUsecaseMock
	federated    *federatedUsecaseMock
	sessions     *sessionUsecaseMock
	checkout     *checkoutUsecaseMock
	account      *entity.Account
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"requestId"`
	} `json:"meta"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &testServer{
		e:            echo.New(),
		registration: &registrationUsecaseMock{},
		auth:         &authUsecaseMock{},
		federated:    &federatedUsecaseMock{},
		sessions:     &sessionUsecaseMock{},
		checkout:     &checkoutUsecaseMock{},
		account: &entity.Account{
			ID:         uuid.New(),
			FullName:   "Ada",
			Email:      "ada@example.com",
			Role:       entity.RoleGuest,
			IsVerified: true,
		},
	}
	t.Cleanup(func() {
		s.registration.AssertExpectations(t)
		s.auth.AssertExpectations(t)
		s.federated.AssertExpectations(t)
		s.checkout.AssertExpectations(t)
	})

	s.sessions.On("Validate", mock.Anything, testToken).
		Return(&usecase.AuthenticatedSession{Account: s.account, TokenID: uuid.New()}, nil).Maybe()
	s.sessions.On("Validate", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidToken).Maybe()

	s.e.Validator = validator.New()
	s.e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	authHandler := NewAuthHandler(AuthHandlerParams{
		Registration: s.registration,
		Auth:         s.auth,
		Federated:    s.federated,
		Sessions:     s.sessions,
		Logger:       logger,
	})
	checkoutHandler := NewCheckoutHandler(CheckoutHandlerParams{Checkout: s.checkout, Logger: logger})
	guard := middleware.NewAuthMiddleware(s.sessions).Authenticate

	s.e.GET("/health", HealthCheck)
	s.e.POST("/auth/register", authHandler.Register)
	s.e.POST("/auth/register/verify", authHandler.VerifyEmail)
	s.e.POST("/auth/login/credentials", authHandler.LoginWithPassword)
	s.e.GET("/auth/login/google", authHandler.GoogleLogin)
	s.e.POST("/auth/login/google", authHandler.GoogleCallback)
	s.e.POST("/auth/logout", authHandler.Logout, guard)
	s.e.POST("/auth/logout/session", authHandler.LogoutAll, guard)
	s.e.GET("/auth/me", authHandler.Me, guard)
	s.e.POST("/cart/checkout", checkoutHandler.Checkout, guard)
	s.e.GET("/orders/:id", checkoutHandler.GetOrder, guard)
	s.e.GET("/orders/:id/receipt.png", checkoutHandler.OrderReceipt, guard)

	return s
}

func (s *testServer) do(method, path, body, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServer(t)
	expiresAt := time.Now().Add(time.Hour).UTC()

	s.registration.On("Signup", mock.Anything, &usecase.SignupInput{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "secret12",
	}).Return(&usecase.PendingReceipt{Email: "ada@example.com", ExpiresAt: expiresAt}, nil).Once()

	rec := s.do(http.MethodPost, "/auth/register", `{"fullName":"Ada","email":"ada@example.com","password":"secret12"}`, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"email":"ada@example.com"`)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/register", `{"fullName":"Ada","email":"not-an-email","password":"secret12"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, map[string]any{"Email": "email"}, env.Error.Details)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	s := newTestServer(t)
	s.registration.On("Signup", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAccountAlreadyExists).Once()

	rec := s.do(http.MethodPost, "/auth/register", `{"fullName":"Ada","email":"ada@example.com","password":"secret12"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", decode(t, rec).Error.Code)
}

func TestAuthHandler_VerifyEmailFromQuery(t *testing.T) {
	s := newTestServer(t)
	s.registration.On("VerifyEmail", mock.Anything, "abc").
		Return(&usecase.VerifiedReceipt{Account: s.account}, nil).Once()

	rec := s.do(http.MethodPost, "/auth/register/verify?token=abc", "", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), s.account.ID.String())
}

func TestAuthHandler_VerifyEmailExpired(t *testing.T) {
	s := newTestServer(t)
	s.registration.On("VerifyEmail", mock.Anything, "abc").Return(nil, domainerrors.ErrVerificationTokenExpired).Once()

	rec := s.do(http.MethodPost, "/auth/register/verify", `{"token":"abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VERIFICATION_TOKEN_EXPIRED", decode(t, rec).Error.Code)
}

func TestAuthHandler_LoginCollapsesFailures(t *testing.T) {
	causes := []error{
		domainerrors.ErrAccountNotFound,
		domainerrors.ErrPasswordLoginDisabled,
		domainerrors.ErrInvalidCredentials,
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			s := newTestServer(t)
			s.auth.On("LoginWithPassword", mock.Anything, mock.Anything).Return(nil, cause).Once()

			rec := s.do(http.MethodPost, "/auth/login/credentials", `{"email":"ada@example.com","password":"wrong-one"}`, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			env := decode(t, rec)
			assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
			assert.Nil(t, env.Error.Details)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t)
	expiresAt := time.Now().Add(time.Hour).UTC()
	s.auth.On("LoginWithPassword", mock.Anything, &usecase.LoginInput{Email: "ada@example.com", Password: "secret12"}).
		Return(&usecase.LoginOutput{
			Account: s.account,
			Session: &usecase.IssuedSession{Token: "new-token", TokenID: uuid.New(), ExpiresAt: expiresAt},
		}, nil).Once()

	rec := s.do(http.MethodPost, "/auth/login/credentials", `{"email":"ada@example.com","password":"secret12"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var session SessionView
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &session))
	assert.Equal(t, "new-token", session.Token)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, s.account.Email, session.Account.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAuthHandler_GoogleLoginFlow(t *testing.T) {
	s := newTestServer(t)
	s.federated.On("Initiate", mock.Anything).
		Return(&usecase.AuthorizationRequest{URL: "https://accounts.example/auth?state=st-1", State: "st-1"}, nil).Once()

	rec := s.do(http.MethodGet, "/auth/login/google", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stateCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == oauthStateCookie {
			stateCookie = cookie
		}
	}
	require.NotNil(t, stateCookie)
	assert.Equal(t, "st-1", stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)

	// a forged state never reaches the provider
	rec = s.do(http.MethodPost, "/auth/login/google", `{"code":"c-1","state":"other"}`, "", stateCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OAUTH_STATE_MISMATCH", decode(t, rec).Error.Code)

	s.federated.On("CompleteLogin", mock.Anything, "c-1").Return(&usecase.LoginOutput{
		Account: s.account,
		Session: &usecase.IssuedSession{Token: "fed-token", ExpiresAt: time.Now().Add(time.Hour)},
		Created: true,
	}, nil).Once()

	rec = s.do(http.MethodPost, "/auth/login/google", `{"code":"c-1","state":"st-1"}`, "", stateCookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "fed-token")
}

func TestAuthHandler_GoogleLoginRedirect(t *testing.T) {
	s := newTestServer(t)
	s.federated.On("Initiate", mock.Anything).
		Return(&usecase.AuthorizationRequest{URL: "https://accounts.example/auth", State: "st-2"}, nil).Once()

	rec := s.do(http.MethodGet, "/auth/login/google?redirect=true", "", "")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://accounts.example/auth", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthHandler_GuardedRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/auth/me", "", "forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decode(t, rec).Error.Code)

	s.auth.On("Me", mock.Anything, s.account.ID).Return(s.account, nil).Once()
	rec = s.do(http.MethodGet, "/auth/me", "", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Ada"`)
}

func TestAuthHandler_Logout(t *testing.T) {
	s := newTestServer(t)
	s.sessions.On("Revoke", mock.Anything, s.account, testToken).Return(nil).Once()
	s.sessions.On("RevokeAll", mock.Anything, s.account).Return(int64(3), nil).Once()

	rec := s.do(http.MethodPost, "/auth/logout", "", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/auth/logout/session", "", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"revokedSessions":3`)

	s.sessions.AssertExpectations(t)
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	s := newTestServer(t)
	cart := &entity.Cart{
		ID:      uuid.New(),
		OwnerID: s.account.ID,
		Items:   []entity.LineItem{{CourseOfferedID: "algo-101", Name: "Algo101", Quantity: 2, Price: 50}},
		Bill:    100,
		Status:  entity.CartStatusCheckedOut,
	}
	order := entity.NewOrder(cart, entity.PaymentMethodCreditCard, time.Now())

	s.checkout.On("Checkout", mock.Anything, &usecase.CheckoutInput{
		OwnerID: s.account.ID,
		Items:   cart.Items,
	}).Return(&usecase.CheckoutOutput{Cart: cart, Order: order}, nil).Once()

	rec := s.do(http.MethodPost, "/cart/checkout",
		`{"cartItems":[{"courseOfferedId":"algo-101","name":"Algo101","quantity":2,"price":50}]}`, testToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out CheckoutResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &out))
	assert.InDelta(t, 100.0, out.Order.TotalAmount, 1e-9)
	assert.Equal(t, entity.OrderStatusPending, out.Order.OrderStatus)
	assert.Equal(t, cart.ID, out.Order.CartID)
}

func TestCheckoutHandler_CheckoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{
			name:   "open cart",
			body:   `{"cartItems":[{"courseOfferedId":"c1","quantity":1,"price":5}]}`,
			err:    domainerrors.NewCheckoutError(domainerrors.StageCreateCart, domainerrors.ErrCartAlreadyExists),
			status: http.StatusConflict,
			code:   "CART_ALREADY_EXISTS",
		},
		{
			name:   "store failure",
			body:   `{"cartItems":[{"courseOfferedId":"c1","quantity":1,"price":5}]}`,
			err:    domainerrors.NewCheckoutError(domainerrors.StageCommit, domainerrors.NewDatabaseExecuteError(io.ErrUnexpectedEOF, "orders")),
			status: http.StatusInternalServerError,
			code:   "DATABASE_EXECUTE_FAILED",
		},
		{
			name:   "empty cart",
			body:   `{"cartItems":[]}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_FAILED",
		},
		{
			name:   "unknown payment method",
			body:   `{"cartItems":[{"courseOfferedId":"c1","quantity":1,"price":5}],"paymentMethod":"gold"}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.err != nil {
				s.checkout.On("Checkout", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			rec := s.do(http.MethodPost, "/cart/checkout", tt.body, testToken)
			assert.Equal(t, tt.status, rec.Code)

			env := decode(t, rec)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.status >= http.StatusInternalServerError {
				assert.Nil(t, env.Error.Details)
			}
		})
	}
}

func TestCheckoutHandler_Orders(t *testing.T) {
	s := newTestServer(t)
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, OwnerID: s.account.ID, TotalAmount: 100, OrderStatus: entity.OrderStatusPending}

	s.checkout.On("GetOrder", mock.Anything, s.account.ID, orderID).Return(order, nil).Once()
	rec := s.do(http.MethodGet, "/orders/"+orderID.String(), "", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), orderID.String())

	otherID := uuid.New()
	s.checkout.On("GetOrder", mock.Anything, s.account.ID, otherID).Return(nil, domainerrors.ErrOrderOwnershipMismatch).Once()
	rec = s.do(http.MethodGet, "/orders/"+otherID.String(), "", testToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/orders/not-a-uuid", "", testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.checkout.On("OrderReceiptQR", mock.Anything, s.account.ID, orderID).Return([]byte("\x89PNG"), nil).Once()
	rec = s.do(http.MethodGet, "/orders/"+orderID.String()+"/receipt.png", "", testToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}
