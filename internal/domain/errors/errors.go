// Package errors defines the application error taxonomy shared by usecases
// and the delivery layer.
package errors

import (
	"net/http"

	"coursemart/internal/errors"
)

// Kind classifies an AppError independently of its transport mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindExternal   Kind = "external"
	KindInvariant  Kind = "invariant"
	KindInternal   Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Optional detail, never shown for 5xx responses
}

// BaseError is the common AppError implementation. Two BaseErrors match
// under errors.Is when they share an error code, so WithDetails copies still
// match their predefined sentinel.
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same error code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) Kind() Kind        { return e.kind }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	c := *e
	c.details = details

	return &c
}

// Validation
var (
	ErrValidationFailed = NewBaseError(KindValidation, http.StatusBadRequest,
		"VALIDATION_FAILED", "Input validation failed", "")

	ErrPasswordStrength = NewBaseError(KindValidation, http.StatusBadRequest,
		"PASSWORD_STRENGTH", "Password does not meet the strength requirements", "")

	ErrPasswordForbiddenWords = NewBaseError(KindValidation, http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS", `Password must not contain "password"`, "")

	ErrVerificationTokenMissing = NewBaseError(KindValidation, http.StatusBadRequest,
		"VERIFICATION_TOKEN_MISSING", "Verification token is required", "")

	ErrVerificationTokenExpired = NewBaseError(KindValidation, http.StatusBadRequest,
		"VERIFICATION_TOKEN_EXPIRED", "Verification link has expired, please register again", "")

	ErrVerificationTokenMalformed = NewBaseError(KindValidation, http.StatusBadRequest,
		"VERIFICATION_TOKEN_MALFORMED", "Verification token is invalid", "")
)

// Duplicates
var (
	ErrAccountAlreadyExists = NewBaseError(KindDuplicate, http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS", "An account with this email already exists", "")

	ErrAlreadyFullyRegistered = NewBaseError(KindDuplicate, http.StatusConflict,
		"ALREADY_FULLY_REGISTERED", "Registration is already complete or was never started", "")

	ErrCartAlreadyExists = NewBaseError(KindDuplicate, http.StatusConflict,
		"CART_ALREADY_EXISTS", "An open cart already exists for this account", "")

	ErrOrderAlreadyExists = NewBaseError(KindDuplicate, http.StatusConflict,
		"ORDER_ALREADY_EXISTS", "An order already exists for this cart", "")
)

// Not found
var (
	ErrAccountNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"ACCOUNT_NOT_FOUND", "Account not found", "")

	ErrCartNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"CART_NOT_FOUND", "Cart not found", "")

	ErrOrderNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"ORDER_NOT_FOUND", "Order not found", "")
)

// Authentication
var (
	ErrMissingToken = NewBaseError(KindAuth, http.StatusUnauthorized,
		"MISSING_TOKEN", "Authorization header is missing or not a bearer token", "")

	ErrInvalidToken = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_TOKEN", "Invalid or expired session token", "")

	ErrRevokedToken = NewBaseError(KindAuth, http.StatusUnauthorized,
		"REVOKED_TOKEN", "Session is no longer active", "")

	ErrInvalidCredentials = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_CREDENTIALS", "Invalid email or password", "")

	// ErrPasswordLoginDisabled marks federated accounts; the login handler
	// answers it with ErrInvalidCredentials.
	ErrPasswordLoginDisabled = NewBaseError(KindAuth, http.StatusUnauthorized,
		"PASSWORD_LOGIN_DISABLED", "Invalid email or password", "")

	ErrOAuthStateMismatch = NewBaseError(KindAuth, http.StatusBadRequest,
		"OAUTH_STATE_MISMATCH", "Login session expired, please try again", "")

	ErrOAuthEmailUnverified = NewBaseError(KindAuth, http.StatusUnauthorized,
		"OAUTH_EMAIL_UNVERIFIED", "The provider account email is not verified", "")

	ErrRateLimited = NewBaseError(KindAuth, http.StatusTooManyRequests,
		"RATE_LIMITED", "Too many login attempts, please try again later", "")
)

// External collaborators
var (
	ErrProviderExchange = NewBaseError(KindExternal, http.StatusBadGateway,
		"PROVIDER_EXCHANGE_FAILED", "Could not complete sign-in with the identity provider", "")

	ErrProfileFetch = NewBaseError(KindExternal, http.StatusBadGateway,
		"PROFILE_FETCH_FAILED", "Could not read the profile from the identity provider", "")

	ErrEmailDelivery = NewBaseError(KindExternal, http.StatusBadGateway,
		"EMAIL_DELIVERY_FAILED", "Could not send the verification email", "")
)

// Invariants
var (
	ErrCartOwnershipMismatch = NewBaseError(KindInvariant, http.StatusForbidden,
		"CART_OWNERSHIP_MISMATCH", "The cart does not belong to this account", "")

	ErrOrderOwnershipMismatch = NewBaseError(KindInvariant, http.StatusForbidden,
		"ORDER_OWNERSHIP_MISMATCH", "The order does not belong to this account", "")
)

// General
var (
	ErrInternalError = NewBaseError(KindInternal, http.StatusInternalServerError,
		"INTERNAL_ERROR", "Internal server error", "")
)

// DatabaseExecuteError represents a store failure, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) Kind() Kind        { return KindExternal }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database operation failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }

// AsAppError returns the outermost AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := AsAppError(err)

	return ok && appErr.Kind() == kind
}
