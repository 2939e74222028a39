package usecase

import (
	"context"
	"time"

	"coursemart/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to start a registration.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Role     entity.Role // Optional, defaults to guest.
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// PendingReceipt acknowledges a registration awaiting verification.
type PendingReceipt struct {
	Email     string
	ExpiresAt time.Time
}

// VerifiedReceipt returns the account promoted by a verification.
type VerifiedReceipt struct {
	Account *entity.Account
}

// LoginOutput returns the session issued by a successful login.
type LoginOutput struct {
	Account *entity.Account
	Session *IssuedSession
	Created bool // Set when a federated login created the account.
}

// AuthorizationRequest is the start of a federated login.
type AuthorizationRequest struct {
	URL   string
	State string
}

// RegistrationUsecase runs the two-phase signup.
type RegistrationUsecase interface {
	// Signup stores a pending registration and mails its verification token.
	Signup(ctx context.Context, input *SignupInput) (*PendingReceipt, error)

	// VerifyEmail promotes the pending registration named by token to an account.
	VerifyEmail(ctx context.Context, token string) (*VerifiedReceipt, error)
}

// AuthUsecase covers password login and the current account.
type AuthUsecase interface {
	LoginWithPassword(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}

// FederatedLoginUsecase reconciles provider identities with accounts.
type FederatedLoginUsecase interface {
	Initiate(ctx context.Context) (*AuthorizationRequest, error)

	// CompleteLogin finds or creates the account of the provider profile and always issues a session.
	CompleteLogin(ctx context.Context, code string) (*LoginOutput, error)
}
