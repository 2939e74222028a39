package handler

import (
	"coursemart/internal/delivery/api/response"
	"coursemart/internal/delivery/api/validator"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the request into req and runs its validate tags.
// On failure the error response has already been written and ok is false.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", "Malformed request body")
	}

	if err := c.Validate(req); err != nil {
		return false, response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Request validation failed", validator.FieldErrors(err))
	}

	return true, nil
}
