// Package validator plugs go-playground/validator into echo.
package validator

import (
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *govalidator.Validate
}

// New returns a validator with required-struct checks enabled.
func New() *Validator {
	return &Validator{validate: govalidator.New(govalidator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens validation errors into field -> failed tag. It returns
// nil when err does not come from the validator.
func FieldErrors(err error) map[string]string {
	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		name := fieldErr.Namespace()
		if idx := strings.Index(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		fields[name] = fieldErr.Tag()
	}

	return fields
}
