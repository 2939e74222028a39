package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

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

// federatedLoginService implements the FederatedLoginUsecase interface.
type federatedLoginService struct {
	txManager    repository.TransactionManager
	oauthService service.OAuthService
	sessions     usecase.SessionUsecase
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// FederatedLoginServiceParams holds dependencies for FederatedLoginService, injected by Fx.
type FederatedLoginServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OAuthService service.OAuthService
	Sessions     usecase.SessionUsecase
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewFederatedLoginService is the constructor for federatedLoginService.
func NewFederatedLoginService(params FederatedLoginServiceParams) usecase.FederatedLoginUsecase {
	return &federatedLoginService{
		txManager:    params.TxManager,
		oauthService: params.OAuthService,
		sessions:     params.Sessions,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *federatedLoginService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Initiate returns the provider consent URL with a fresh state value.
func (srv *federatedLoginService) Initiate(_ context.Context) (*usecase.AuthorizationRequest, error) {
	state := uuid.NewString()

	return &usecase.AuthorizationRequest{
		URL:   srv.oauthService.BuildAuthorizationURL(state),
		State: state,
	}, nil
}

// CompleteLogin exchanges code, reconciles the profile with the account store
// and issues a session for both new and returning accounts.
func (srv *federatedLoginService) CompleteLogin(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("authorization code is required")
	}

	provider := srv.oauthService.GetProvider()

	token, err := srv.oauthService.ExchangeCode(ctx, code)
	if err != nil {
		srv.log(ctx).Error("Authorization code exchange failed", slog.String("provider", string(provider)), slog.Any("error", err))

		return nil, domainerrors.ErrProviderExchange.WrapMessage(err.Error())
	}

	profile, err := srv.oauthService.FetchProfile(ctx, token)
	if err != nil {
		srv.log(ctx).Error("Provider profile fetch failed", slog.String("provider", string(provider)), slog.Any("error", err))

		return nil, domainerrors.ErrProfileFetch.WrapMessage(err.Error())
	}
	if profile.Email == "" {
		return nil, domainerrors.ErrProfileFetch.WithDetails("provider profile has no email")
	}
	if !profile.EmailVerified {
		return nil, domainerrors.ErrOAuthEmailUnverified
	}

	var (
		account *entity.Account
		created bool
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, created, findErr = srv.findOrCreateAccount(ctx, repoFactory.AccountRepo(), profile)

		return findErr
	})
	if err != nil {
		srv.log(ctx).Error("Failed to reconcile federated account", slog.String("provider", string(provider)), slog.Any("error", err))

		return nil, err
	}

	session, err := srv.sessions.Issue(ctx, account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	srv.log(ctx).Info("Federated login succeeded",
		slog.String("provider", string(provider)),
		slog.Any("account_id", account.ID),
		slog.Bool("created", created),
	)

	if created {
		publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAccountVerified, map[string]string{
			"account_id": account.ID.String(),
			"email":      account.Email,
			"method":     string(provider),
		})
	}

	return &usecase.LoginOutput{Account: account, Session: session, Created: created}, nil
}

func (srv *federatedLoginService) findOrCreateAccount(ctx context.Context, accountRepo repository.AccountRepository, profile *service.OAuthUser) (*entity.Account, bool, error) {
	email := entity.NormalizeEmail(profile.Email)

	account, err := accountRepo.FindByEmail(ctx, email)
	if err == nil {
		if err := srv.linkProviderSubject(ctx, accountRepo, account, profile); err != nil {
			return nil, false, err
		}

		return account, false, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, false, errors.Wrap(err, "failed to find account")
	}

	fullName := strings.TrimSpace(profile.Name)
	if fullName == "" {
		fullName, _, _ = strings.Cut(email, "@")
	}

	now := srv.now()
	account = &entity.Account{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		Role:         entity.RoleGuest,
		IsVerified:   true,
		GoogleSignIn: true,
		GoogleID:     profile.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountAlreadyExists) {
			return nil, false, domainerrors.ErrAccountAlreadyExists.WithDetails("account was created concurrently, retry the login")
		}

		return nil, false, errors.Wrap(err, "failed to create account")
	}

	return account, true, nil
}

// linkProviderSubject records the provider id on an account that has none yet.
// Password login stays available on linked password accounts.
func (srv *federatedLoginService) linkProviderSubject(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account, profile *service.OAuthUser) error {
	if account.GoogleID != "" || profile.ID == "" {
		return nil
	}

	account.GoogleID = profile.ID
	account.UpdatedAt = srv.now()
	if err := accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountAlreadyExists) {
			return domainerrors.ErrAccountAlreadyExists.WithDetails("provider identity is linked to another account")
		}

		return errors.Wrap(err, "failed to link provider identity")
	}

	return nil
}
