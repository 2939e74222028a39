// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the permanent identity of a person on the marketplace.
type Account struct {
	ID           uuid.UUID
	FullName     string
	Email        string // Unique across all accounts, stored lower-cased.
	PasswordHash string // Empty for federation-only accounts.
	Role         Role
	IsVerified   bool
	GoogleSignIn bool   // Set when the account was created through federated login.
	GoogleID     string // Provider subject id, empty for password accounts.
	Sessions     SessionSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether password login is possible for the account.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != "" && !a.GoogleSignIn
}

// SessionToken is one live bearer session of an account. Only a hash of the
// signed token is kept.
type SessionToken struct {
	ID        uuid.UUID // JWT "jti"
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionSet is the set of live sessions of an account keyed by token id.
type SessionSet map[uuid.UUID]*SessionToken

// Contains reports whether the set holds tokenID with the given hash.
func (s SessionSet) Contains(tokenID uuid.UUID, tokenHash string) bool {
	tok, ok := s[tokenID]

	return ok && tok.TokenHash == tokenHash
}
