package impl

import (
	"context"
	"errors"
	"testing"

	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/service"
	mockService "coursemart/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFederatedService(t *testing.T, f *fixture) (*federatedLoginService, *mockService.MockOAuthService) {
	t.Helper()

	oauth := mockService.NewMockOAuthService(t)
	oauth.EXPECT().GetProvider().Return(entity.ProviderTypeGoogle).Maybe()

	srv := NewFederatedLoginService(FederatedLoginServiceParams{
		TxManager:    f.store,
		OAuthService: oauth,
		Sessions:     f.sessions,
		Publisher:    f.publisher,
		Logger:       newDiscardLogger(),
	}).(*federatedLoginService)

	return srv, oauth
}

func expectProfile(oauth *mockService.MockOAuthService, profile *service.OAuthUser) {
	token := &service.OAuthToken{AccessToken: "access", IDToken: "id"}
	oauth.EXPECT().ExchangeCode(mock.Anything, "code-1").Return(token, nil).Once()
	oauth.EXPECT().FetchProfile(mock.Anything, token).Return(profile, nil).Once()
}

func TestFederatedLogin_Initiate(t *testing.T) {
	f := newFixture(t)
	srv, oauth := newFederatedService(t, f)

	oauth.EXPECT().BuildAuthorizationURL(mock.AnythingOfType("string")).
		RunAndReturn(func(state string) string { return "https://accounts.example/auth?state=" + state })

	req, err := srv.Initiate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, req.State)
	assert.Equal(t, "https://accounts.example/auth?state="+req.State, req.URL)
}

func TestFederatedLogin_CreatesAccountOnFirstLogin(t *testing.T) {
	f := newFixture(t)
	srv, oauth := newFederatedService(t, f)
	ctx := context.Background()

	expectProfile(oauth, &service.OAuthUser{
		ID: "sub-1", Email: "Grace@Example.com", Name: "Grace Hopper", EmailVerified: true,
	})

	out, err := srv.CompleteLogin(ctx, "code-1")
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "grace@example.com", out.Account.Email)
	assert.True(t, out.Account.GoogleSignIn)
	assert.True(t, out.Account.IsVerified)
	assert.Empty(t, out.Account.PasswordHash)
	assert.Equal(t, "sub-1", out.Account.GoogleID)

	_, err = f.sessions.Validate(ctx, out.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{service.EventAccountVerified}, f.eventTypes())
}

func TestFederatedLogin_ExistingAccountGetsFreshToken(t *testing.T) {
	f := newFixture(t)
	srv, oauth := newFederatedService(t, f)
	ctx := context.Background()
	existing := f.createVerifiedAccount(t, "grace@example.com", "secret12")

	expectProfile(oauth, &service.OAuthUser{
		ID: "sub-1", Email: "grace@example.com", Name: "Grace", EmailVerified: true,
	})

	out, err := srv.CompleteLogin(ctx, "code-1")
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, existing.ID, out.Account.ID)
	require.NotNil(t, out.Session)

	_, err = f.sessions.Validate(ctx, out.Session.Token)
	assert.NoError(t, err)

	stored, err := f.store.accountRepo().FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", stored.GoogleID)
	assert.False(t, stored.GoogleSignIn, "linking keeps password login available")
	assert.Empty(t, f.eventTypes())
}

func TestFederatedLogin_Failures(t *testing.T) {
	t.Run("exchange", func(t *testing.T) {
		f := newFixture(t)
		srv, oauth := newFederatedService(t, f)
		oauth.EXPECT().ExchangeCode(mock.Anything, "code-1").Return(nil, errors.New("invalid_grant"))

		_, err := srv.CompleteLogin(context.Background(), "code-1")
		assert.ErrorIs(t, err, domainerrors.ErrProviderExchange)
	})

	t.Run("profile", func(t *testing.T) {
		f := newFixture(t)
		srv, oauth := newFederatedService(t, f)
		oauth.EXPECT().ExchangeCode(mock.Anything, "code-1").Return(&service.OAuthToken{AccessToken: "a"}, nil)
		oauth.EXPECT().FetchProfile(mock.Anything, mock.Anything).Return(nil, errors.New("401"))

		_, err := srv.CompleteLogin(context.Background(), "code-1")
		assert.ErrorIs(t, err, domainerrors.ErrProfileFetch)
	})

	t.Run("unverified email", func(t *testing.T) {
		f := newFixture(t)
		srv, oauth := newFederatedService(t, f)
		expectProfile(oauth, &service.OAuthUser{ID: "sub", Email: "x@example.com", EmailVerified: false})

		_, err := srv.CompleteLogin(context.Background(), "code-1")
		assert.ErrorIs(t, err, domainerrors.ErrOAuthEmailUnverified)
		assert.Empty(t, f.store.state.accounts)
	})

	t.Run("missing code", func(t *testing.T) {
		f := newFixture(t)
		srv, _ := newFederatedService(t, f)

		_, err := srv.CompleteLogin(context.Background(), "")
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}
