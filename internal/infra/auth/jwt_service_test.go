package auth

import (
	"strings"
	"testing"
	"time"

	"coursemart/config"
	"coursemart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Session:      "test_session_secret_key_very_long_for_testing",
			Verification: "test_verification_secret_key_very_long_for_testing",
		},
		Auth: &config.AuthConfig{SessionTTL: time.Hour, VerificationTTL: time.Hour},
	}
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_SessionRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	accountID := uuid.New()

	token, issued, err := svc.GenerateSessionToken(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, accountID, issued.AccountID)
	assert.WithinDuration(t, issued.IssuedAt.Add(time.Hour), issued.ExpiresAt, time.Second)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, issued.TokenID, claims.TokenID)
}

func TestJWTService_SessionTokensAreDistinct(t *testing.T) {
	svc := newTestJWTService(t)
	accountID := uuid.New()

	first, _, err := svc.GenerateSessionToken(accountID)
	require.NoError(t, err)
	second, _, err := svc.GenerateSessionToken(accountID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_ExpiredSessionToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateSessionToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_MalformedTokens(t *testing.T) {
	svc := newTestJWTService(t)

	verification, err := svc.GenerateVerificationToken("ada@x.com", "Ada", "nonce-1")
	require.NoError(t, err)
	session, _, err := svc.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	other, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Session: "other", Verification: "other"}})
	require.NoError(t, err)
	foreign, _, err := other.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name     string
		validate func() error
	}{
		{name: "garbage session", validate: func() error { _, err := svc.ValidateSessionToken("clearly-not-a-jwt"); return err }},
		{name: "foreign signature", validate: func() error { _, err := svc.ValidateSessionToken(foreign); return err }},
		{name: "verification token as session", validate: func() error { _, err := svc.ValidateSessionToken(verification); return err }},
		{name: "session token as verification", validate: func() error { _, err := svc.ValidateVerificationToken(session); return err }},
		{name: "tampered verification", validate: func() error {
			_, err := svc.ValidateVerificationToken(strings.TrimSuffix(verification, verification[len(verification)-2:]) + "xx")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			assert.True(t, errors.Is(err, service.ErrTokenMalformed), "got %v", err)
		})
	}
}

func TestJWTService_VerificationRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateVerificationToken("ada@x.com", "Ada", "nonce-1")
	require.NoError(t, err)

	claims, err := svc.ValidateVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", claims.Email)
	assert.Equal(t, "Ada", claims.FullName)
	assert.Equal(t, "nonce-1", claims.Nonce)
}

func TestJWTService_VerificationTokenWithoutNonce(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateVerificationToken("ada@x.com", "Ada", "")
	require.NoError(t, err)

	_, err = svc.ValidateVerificationToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed), "got %v", err)
}

func TestJWTService_ExpiredVerificationToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-61 * time.Minute) }
	token, err := svc.GenerateVerificationToken("ada@x.com", "Ada", "nonce-1")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateVerificationToken(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_EmptySecrets(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_HashToken(t *testing.T) {
	svc := newTestJWTService(t)

	assert.Equal(t, svc.HashToken("abc"), svc.HashToken("abc"))
	assert.NotEqual(t, svc.HashToken("abc"), svc.HashToken("abd"))
	assert.Len(t, svc.HashToken("abc"), 64)
}
