package service

import (
	"context"

	"coursemart/internal/domain/entity"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string              // Provider subject id
	Email         string              // User's email address
	Name          string              // User's display name
	Provider      entity.ProviderType // The OAuth provider
	AvatarURL     string              // URL to user's profile picture
	EmailVerified bool                // Whether the email is verified by the provider
}

// OAuthToken is the credential returned by an authorization code exchange.
type OAuthToken struct {
	AccessToken string
	IDToken     string
}

// OAuthService runs the server-side authorization code flow of one provider.
type OAuthService interface {
	// BuildAuthorizationURL returns the consent URL carrying client id, redirect URI,
	// scopes, response_type=code and state. It has no side effects.
	BuildAuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for provider tokens.
	ExchangeCode(ctx context.Context, code string) (*OAuthToken, error)

	// FetchProfile reads the profile of the token's subject.
	FetchProfile(ctx context.Context, token *OAuthToken) (*OAuthUser, error)

	GetProvider() entity.ProviderType
}
