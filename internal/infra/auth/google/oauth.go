// Package google implements the authorization code flow against Google.
package google

import (
	"context"
	"strings"

	"coursemart/config"
	"coursemart/internal/domain/entity"
	"coursemart/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var defaultScopes = []string{"profile", "email"}

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig *oauth2.Config
	// apiEndpoint overrides the userinfo API base URL; empty uses Google's.
	apiEndpoint string
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config) service.OAuthService {
	return newOAuthService(cfg, googleoauth.Endpoint, "")
}

func newOAuthService(cfg *config.Config, endpoint oauth2.Endpoint, apiEndpoint string) *OAuthService {
	oauthCfg := &oauth2.Config{Endpoint: endpoint, Scopes: defaultScopes}
	if g := cfg.GoogleOAuth; g != nil {
		oauthCfg.ClientID = g.ClientID
		oauthCfg.ClientSecret = g.ClientSecret
		oauthCfg.RedirectURL = g.RedirectURI
		if len(g.Scopes) > 0 {
			oauthCfg.Scopes = g.Scopes
		}
	}

	return &OAuthService{oauthConfig: oauthCfg, apiEndpoint: apiEndpoint}
}

// BuildAuthorizationURL returns the consent page URL for state.
func (s *OAuthService) BuildAuthorizationURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for tokens at Google's token endpoint.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (*service.OAuthToken, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is empty")
	}

	tok, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for token")
	}

	out := &service.OAuthToken{AccessToken: tok.AccessToken}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		out.IDToken = idToken
	}

	return out, nil
}

// FetchProfile reads the userinfo of the token owner.
func (s *OAuthService) FetchProfile(ctx context.Context, token *service.OAuthToken) (*service.OAuthUser, error) {
	if token == nil || token.AccessToken == "" {
		return nil, errors.New("access token is empty")
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
	}))
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if s.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.apiEndpoint))
	}

	api, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create userinfo client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	if info.Email == "" {
		return nil, errors.New("provider profile has no email")
	}

	return &service.OAuthUser{
		ID:            info.Id,
		Email:         info.Email,
		Name:          info.Name,
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     info.Picture,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
	}, nil
}

// GetProvider returns the OAuth provider type
func (s *OAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}
