package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"coursemart/config"
	"coursemart/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	tokenTypeSession      = "session"
	tokenTypeVerification = "verification"

	fallbackTokenTTL = time.Hour
)

type sessionTokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type verificationTokenClaims struct {
	Type     string `json:"type"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	sessionSecret      []byte
	verificationSecret []byte
	sessionTTL         time.Duration
	verificationTTL    time.Duration
	now                func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" || cfg.SecretKey.Verification == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		sessionSecret:      []byte(cfg.SecretKey.Session),
		verificationSecret: []byte(cfg.SecretKey.Verification),
		sessionTTL:         fallbackTokenTTL,
		verificationTTL:    fallbackTokenTTL,
		now:                time.Now,
	}
	if cfg.Auth != nil {
		if cfg.Auth.SessionTTL > 0 {
			svc.sessionTTL = cfg.Auth.SessionTTL
		}
		if cfg.Auth.VerificationTTL > 0 {
			svc.verificationTTL = cfg.Auth.VerificationTTL
		}
	}

	return svc, nil
}

// GenerateSessionToken mints a session token bound to accountID.
func (s *jwtService) GenerateSessionToken(accountID uuid.UUID) (string, *service.SessionClaims, error) {
	now := s.now()
	tokenID := uuid.New()
	claims := sessionTokenClaims{
		Type: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign session token")
	}

	return signed, &service.SessionClaims{
		AccountID: accountID,
		TokenID:   tokenID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateSessionToken checks signature, expiry and token type.
func (s *jwtService) ValidateSessionToken(token string) (*service.SessionClaims, error) {
	claims := &sessionTokenClaims{}
	if err := s.parse(token, claims, s.sessionSecret); err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeSession {
		return nil, errors.Wrap(service.ErrTokenMalformed, "unexpected token type")
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "invalid subject")
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "invalid token id")
	}

	out := &service.SessionClaims{AccountID: accountID, TokenID: tokenID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	out.ExpiresAt = claims.ExpiresAt.Time

	return out, nil
}

// GenerateVerificationToken embeds the registration identity in a short-lived token.
func (s *jwtService) GenerateVerificationToken(email, fullName, nonce string) (string, error) {
	now := s.now()
	claims := verificationTokenClaims{
		Type:     tokenTypeVerification,
		Email:    email,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.verificationTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.verificationSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign verification token")
	}

	return signed, nil
}

// ValidateVerificationToken checks signature, expiry and payload.
func (s *jwtService) ValidateVerificationToken(token string) (*service.VerificationClaims, error) {
	claims := &verificationTokenClaims{}
	if err := s.parse(token, claims, s.verificationSecret); err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeVerification || claims.Email == "" || claims.ID == "" {
		return nil, errors.Wrap(service.ErrTokenMalformed, "unexpected verification payload")
	}

	return &service.VerificationClaims{
		Email:     claims.Email,
		FullName:  claims.FullName,
		Nonce:     claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// HashToken returns the hex SHA-256 digest of token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *jwtService) parse(token string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	}

	return errors.Wrap(service.ErrTokenMalformed, err.Error())
}
