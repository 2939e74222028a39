package errors

import (
	"net/http"
)

// CheckoutStage names the step of a checkout that failed.
type CheckoutStage string

const (
	StageCreateCart  CheckoutStage = "create_cart"
	StageCreateOrder CheckoutStage = "create_order"
	StageCommit      CheckoutStage = "commit"
)

// CheckoutError is the single error surfaced by a failed checkout. It reports
// the transport mapping of its cause so callers see e.g. CART_ALREADY_EXISTS.
type CheckoutError struct {
	Stage CheckoutStage
	cause error
}

// NewCheckoutError wraps cause as a checkout failure at stage.
func NewCheckoutError(stage CheckoutStage, cause error) *CheckoutError {
	return &CheckoutError{Stage: stage, cause: cause}
}

func (e *CheckoutError) Error() string {
	return "checkout failed at " + string(e.Stage) + ": " + e.cause.Error()
}

func (e *CheckoutError) Unwrap() error { return e.cause }

func (e *CheckoutError) Kind() Kind {
	if appErr, ok := AsAppError(e.cause); ok {
		return appErr.Kind()
	}

	return KindInternal
}

func (e *CheckoutError) HTTPCode() int {
	if appErr, ok := AsAppError(e.cause); ok {
		return appErr.HTTPCode()
	}

	return http.StatusInternalServerError
}

func (e *CheckoutError) ErrorCode() string {
	if appErr, ok := AsAppError(e.cause); ok {
		return appErr.ErrorCode()
	}

	return "CHECKOUT_FAILED"
}

func (e *CheckoutError) Message() string {
	if appErr, ok := AsAppError(e.cause); ok {
		return appErr.Message()
	}

	return "Checkout failed"
}

func (e *CheckoutError) Details() string {
	if appErr, ok := AsAppError(e.cause); ok && appErr.Details() != "" {
		return appErr.Details()
	}

	return string(e.Stage)
}
