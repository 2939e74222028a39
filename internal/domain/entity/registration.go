package entity

import (
	"strings"

	domainerrors "coursemart/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the identity fields of a new account.
// Password rules are enforced by the PasswordHasher.
func ValidateRegistration(fullName, email string) error {
	if strings.TrimSpace(fullName) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("full name is required")
	}

	if err := fieldValidator.Var(email, "required,email"); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("email is not a valid address")
	}

	return nil
}
