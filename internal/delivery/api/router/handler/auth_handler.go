// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/response"
	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	oauthStateCookie = "coursemart_oauth_state"
	oauthStateMaxAge = 10 * time.Minute
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Registration usecase.RegistrationUsecase
	Auth         usecase.AuthUsecase
	Federated    usecase.FederatedLoginUsecase
	Sessions     usecase.SessionUsecase
	Logger       *slog.Logger
}

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	registration usecase.RegistrationUsecase
	auth         usecase.AuthUsecase
	federated    usecase.FederatedLoginUsecase
	sessions     usecase.SessionUsecase
	logger       *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		registration: params.Registration,
		auth:         params.Auth,
		federated:    params.Federated,
		sessions:     params.Sessions,
		logger:       params.Logger,
	}
}

type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=guest student tutor admin"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" query:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

// Register starts a registration and mails the verification link.
func (h *AuthHandler) Register(c echo.Context) error {
	var req SignupRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	receipt, err := h.registration.Signup(c.Request().Context(), &usecase.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, map[string]any{
		"email":     receipt.Email,
		"expiresAt": receipt.ExpiresAt,
		"message":   "Check your inbox to verify your email",
	})
}

// VerifyEmail promotes a pending registration. The token is read from the
// body or the query string.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Malformed request body")
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}

	receipt, err := h.registration.VerifyEmail(c.Request().Context(), req.Token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountView(receipt.Account))
}

// LoginWithPassword exchanges credentials for a session token. Unknown
// emails and federation-only accounts answer like a wrong password.
func (h *AuthHandler) LoginWithPassword(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	output, err := h.auth.LoginWithPassword(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) || errors.Is(err, domainerrors.ErrPasswordLoginDisabled) {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Info("Password login rejected", slog.Any("reason", err))

			return response.HandleAppError(c, domainerrors.ErrInvalidCredentials)
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newSessionView(output))
}

// GoogleLogin starts the federated login. The state is pinned in a cookie and
// checked again on completion. With ?redirect=true the client is sent to the
// provider directly.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	authReq, err := h.federated.Initiate(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    authReq.State,
		Path:     "/",
		MaxAge:   int(oauthStateMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, authReq.URL)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"authUrl": authReq.URL,
		"state":   authReq.State,
	})
}

// GoogleCallback completes the federated login and always issues a new session.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	var req GoogleLoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	cookie, err := c.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != req.State {
		return response.HandleAppError(c, domainerrors.ErrOAuthStateMismatch)
	}
	c.SetCookie(&http.Cookie{Name: oauthStateCookie, Path: "/", MaxAge: -1, HttpOnly: true})

	output, err := h.federated.CompleteLogin(c.Request().Context(), req.Code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}

	return response.Success(c, status, newSessionView(output))
}

// Logout revokes the token of the current request.
func (h *AuthHandler) Logout(c echo.Context) error {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}
	token, _ := middleware.GetSessionToken(c)

	if err := h.sessions.Revoke(c.Request().Context(), account, token); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// LogoutAll revokes every session of the current account.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	revoked, err := h.sessions.RevokeAll(c.Request().Context(), account)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message":         "Logged out of all sessions",
		"revokedSessions": revoked,
	})
}

// Me returns the current account.
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	account, err := h.auth.Me(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account))
}
