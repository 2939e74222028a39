package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, wrong token types and unreadable payloads.
	ErrTokenMalformed = errors.New("token malformed")
)

// SessionClaims is the payload of a bearer session token.
type SessionClaims struct {
	AccountID uuid.UUID
	TokenID   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// VerificationClaims is the payload of an email verification token.
type VerificationClaims struct {
	Email     string
	FullName  string
	Nonce     string
	ExpiresAt time.Time
}

// TokenService signs and verifies the two token families of the system.
type TokenService interface {
	// GenerateSessionToken mints a session token bound to accountID with a fresh token id.
	GenerateSessionToken(accountID uuid.UUID) (string, *SessionClaims, error)

	// ValidateSessionToken returns ErrTokenExpired or ErrTokenMalformed on failure.
	ValidateSessionToken(token string) (*SessionClaims, error)

	// GenerateVerificationToken carries nonce as the token id.
	GenerateVerificationToken(email, fullName, nonce string) (string, error)

	// ValidateVerificationToken returns ErrTokenExpired or ErrTokenMalformed on failure.
	ValidateVerificationToken(token string) (*VerificationClaims, error)

	// HashToken returns the digest stored in place of a raw token.
	HashToken(token string) string
}
