// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/repository"
	"coursemart/internal/domain/service"
	"coursemart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionTokenRepository
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	SessionRepo  repository.SessionTokenRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		accountRepo:  params.AccountRepo,
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue mints a token for account and adds it to the account's session set.
// Expired rows of the account are purged first.
func (srv *sessionService) Issue(ctx context.Context, account *entity.Account) (*usecase.IssuedSession, error) {
	if _, err := srv.sessionRepo.RemoveExpired(ctx, account.ID, srv.now()); err != nil {
		return nil, errors.Wrap(err, "failed to purge expired sessions")
	}

	token, claims, err := srv.tokenService.GenerateSessionToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	record := &entity.SessionToken{
		ID:        claims.TokenID,
		AccountID: account.ID,
		TokenHash: srv.tokenService.HashToken(token),
		ExpiresAt: claims.ExpiresAt,
	}
	if err := srv.sessionRepo.Add(ctx, record); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to store session token")
	}

	if account.Sessions == nil {
		account.Sessions = make(entity.SessionSet)
	}
	account.Sessions[record.ID] = record

	srv.log(ctx).Debug("Session issued", slog.Any("account_id", account.ID), slog.Any("token_id", record.ID))

	return &usecase.IssuedSession{
		Token:     token,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Validate checks the signature and expiry of token, then requires it in its owner's session set.
func (srv *sessionService) Validate(ctx context.Context, token string) (*usecase.AuthenticatedSession, error) {
	claims, err := srv.tokenService.ValidateSessionToken(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrRevokedToken.WrapMessage("token owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load token owner")
	}

	if !account.Sessions.Contains(claims.TokenID, srv.tokenService.HashToken(token)) {
		return nil, domainerrors.ErrRevokedToken
	}

	return &usecase.AuthenticatedSession{Account: account, TokenID: claims.TokenID}, nil
}

// Revoke drops token from the account's session set. Expired, foreign or unknown tokens are ignored.
func (srv *sessionService) Revoke(ctx context.Context, account *entity.Account, token string) error {
	claims, err := srv.tokenService.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			// expired rows are purged on the next Issue
			return nil
		}

		return domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}
	if claims.AccountID != account.ID {
		return nil
	}

	stored, err := srv.sessionRepo.Find(ctx, account.ID, claims.TokenID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find session")
	}
	if stored.TokenHash != srv.tokenService.HashToken(token) {
		return nil
	}

	if _, err := srv.sessionRepo.Remove(ctx, account.ID, claims.TokenID); err != nil {
		srv.log(ctx).Error("Failed to revoke session", slog.Any("error", err), slog.Any("account_id", account.ID))

		return errors.Wrap(err, "failed to revoke session")
	}
	delete(account.Sessions, claims.TokenID)

	srv.log(ctx).Info("Session revoked", slog.Any("account_id", account.ID), slog.Any("token_id", claims.TokenID))

	return nil
}

// RevokeAll ends every session of account.
func (srv *sessionService) RevokeAll(ctx context.Context, account *entity.Account) (int64, error) {
	removed, err := srv.sessionRepo.RemoveAll(ctx, account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err), slog.Any("account_id", account.ID))

		return 0, errors.Wrap(err, "failed to revoke all sessions")
	}
	account.Sessions = make(entity.SessionSet)

	srv.log(ctx).Info("All sessions revoked", slog.Any("account_id", account.ID), slog.Int64("count", removed))

	return removed, nil
}
