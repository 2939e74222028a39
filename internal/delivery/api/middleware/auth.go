package middleware

import (
	"strings"

	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyAccount = "account"
	contextKeyToken   = "sessionToken"
)

// AuthMiddleware resolves bearer session tokens to accounts.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate rejects requests without a live session token. On success the
// account and the raw token are stored on the echo context, and the request
// logger is tagged with the account id.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrMissingToken
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			return domainerrors.ErrInvalidToken.WithDetails("authorization header must be a Bearer token")
		}

		session, err := m.sessions.Validate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(contextKeyAccount, session.Account)
		c.Set(contextKeyToken, token)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithAccountID(c.Request().Context(), session.Account.ID)))

		return next(c)
	}
}

// GetAccount returns the account resolved by Authenticate.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(contextKeyAccount).(*entity.Account)

	return account, ok && account != nil
}

// GetAccountID returns the id of the account resolved by Authenticate.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	account, ok := GetAccount(c)
	if !ok {
		return uuid.Nil, false
	}

	return account.ID, true
}

// GetSessionToken returns the raw bearer token of the request.
func GetSessionToken(c echo.Context) (string, bool) {
	token, ok := c.Get(contextKeyToken).(string)

	return token, ok && token != ""
}
