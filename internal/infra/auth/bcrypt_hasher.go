// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"coursemart/config"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// reservedPasswordWord may never appear in a password, whatever the configured policy.
const reservedPasswordWord = "password"

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	var policy config.PasswordStrengthConfig
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// The password must pass ValidatePasswordStrength first.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrInternalError.WrapMessage("bcrypt: " + err.Error())
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength applies the configured password policy on top of
// the reserved word rule.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	length := len([]rune(password))
	if h.policy.MinLength > 0 && length < h.policy.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too short")
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}
	// bcrypt ignores everything past 72 bytes.
	if len(password) > 72 {
		return domainerrors.ErrPasswordStrength.WithDetails("password exceeds 72 bytes")
	}

	lowered := strings.ToLower(password)
	if strings.Contains(lowered, reservedPasswordWord) {
		return domainerrors.ErrPasswordForbiddenWords
	}
	for _, word := range h.policy.ForbiddenWords {
		if word != "" && strings.Contains(lowered, strings.ToLower(word)) {
			return domainerrors.ErrPasswordForbiddenWords
		}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case h.policy.RequireUppercase && !hasUpper:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs an uppercase letter")
	case h.policy.RequireLowercase && !hasLower:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a lowercase letter")
	case h.policy.RequireNumbers && !hasDigit:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a digit")
	case h.policy.RequireSpecial && !hasSpecial:
		return domainerrors.ErrPasswordStrength.WithDetails("password needs a special character")
	}

	return nil
}
