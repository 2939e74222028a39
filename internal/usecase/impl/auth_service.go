package impl

import (
	"context"
	"log/slog"

	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/repository"
	"coursemart/internal/domain/service"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	sessions    usecase.SessionUsecase
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Sessions    usecase.SessionUsecase
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		sessions:    params.Sessions,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoginWithPassword issues a session for a matching email and password. The
// returned error tells an unknown email (ErrAccountNotFound), a federated
// account (ErrPasswordLoginDisabled) and a wrong password (ErrInvalidCredentials)
// apart; the transport collapses them.
func (srv *authService) LoginWithPassword(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("Login for unknown email", slog.String("email", email))

			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !account.HasPassword() {
		srv.log(ctx).Info("Password login on federated account", slog.Any("account_id", account.ID))

		return nil, domainerrors.ErrPasswordLoginDisabled
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Password mismatch", slog.Any("account_id", account.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	session, err := srv.sessions.Issue(ctx, account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("account_id", account.ID))

	return &usecase.LoginOutput{Account: account, Session: session}, nil
}

// Me returns the account with its live sessions.
func (srv *authService) Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}
