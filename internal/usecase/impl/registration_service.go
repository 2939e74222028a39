package impl

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"coursemart/config"
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

const verificationSubject = "Verify your email"

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	accountRepo         repository.AccountRepository
	pendingRepo         repository.PendingAccountRepository
	hasher              service.PasswordHasher
	tokenService        service.TokenService
	emailSender         service.EmailSender
	publisher           service.EventPublisher
	pendingTTL          time.Duration
	verificationBaseURL string
	logger              *slog.Logger
	now                 func() time.Time
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	PendingRepo  repository.PendingAccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	EmailSender  service.EmailSender
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	pendingTTL := time.Hour
	if params.Config.Auth != nil && params.Config.Auth.PendingAccountTTL > 0 {
		pendingTTL = params.Config.Auth.PendingAccountTTL
	}

	var baseURL string
	if params.Config.Email != nil {
		baseURL = params.Config.Email.VerificationBaseURL
	}

	return &registrationService{
		accountRepo:         params.AccountRepo,
		pendingRepo:         params.PendingRepo,
		hasher:              params.Hasher,
		tokenService:        params.TokenService,
		emailSender:         params.EmailSender,
		publisher:           params.Publisher,
		pendingTTL:          pendingTTL,
		verificationBaseURL: strings.TrimRight(baseURL, "/"),
		logger:              params.Logger,
		now:                 time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup stores a pending registration and mails the verification link.
// No account exists until the link is followed.
func (srv *registrationService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.PendingReceipt, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := entity.NormalizeEmail(input.Email)

	if err := entity.ValidateRegistration(fullName, email); err != nil {
		return nil, err
	}
	if input.Role == entity.RoleAdmin || (input.Role != "" && !input.Role.IsValid()) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role cannot be requested at signup")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	exists, err := srv.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if exists {
		return nil, domainerrors.ErrAccountAlreadyExists
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	nonce := uuid.NewString()
	token, err := srv.tokenService.GenerateVerificationToken(email, fullName, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign verification token")
	}

	now := srv.now()
	pending := &entity.PendingAccount{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entity.RoleOrDefault(input.Role),
		Nonce:        nonce,
		CreatedAt:    now,
	}
	if err := srv.pendingRepo.Save(ctx, pending, srv.pendingTTL); err != nil {
		return nil, errors.Wrap(err, "failed to store pending account")
	}

	if err := srv.emailSender.Send(ctx, srv.verificationEmail(pending, token)); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrEmailDelivery.WrapMessage(err.Error())
	}

	srv.log(ctx).Debug("Verification email sent", slog.String("email", email))

	return &usecase.PendingReceipt{
		Email:     email,
		ExpiresAt: now.Add(srv.pendingTTL),
	}, nil
}

// VerifyEmail promotes the pending registration named by token. A token whose
// registration is already promoted yields ErrAlreadyFullyRegistered; a token
// issued for a replaced registration is malformed.
func (srv *registrationService) VerifyEmail(ctx context.Context, token string) (*usecase.VerifiedReceipt, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerrors.ErrVerificationTokenMissing
	}

	claims, err := srv.tokenService.ValidateVerificationToken(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, domainerrors.ErrVerificationTokenExpired
		}

		return nil, domainerrors.ErrVerificationTokenMalformed
	}
	email := entity.NormalizeEmail(claims.Email)

	pending, err := srv.pendingRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPendingAccountNotFound) {
			return nil, domainerrors.ErrAlreadyFullyRegistered
		}

		return nil, errors.Wrap(err, "failed to load pending account")
	}
	// A re-signup replaces the record; links mailed for earlier records stop working.
	if pending.Nonce != claims.Nonce {
		srv.log(ctx).Info("Verification token superseded by a newer signup", slog.String("email", email))

		return nil, domainerrors.ErrVerificationTokenMalformed
	}

	account := pending.Promote(srv.now())
	account.ID = uuid.New()
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountAlreadyExists) {
			return nil, domainerrors.ErrAccountAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	if err := srv.pendingRepo.Delete(ctx, email); err != nil {
		// the account is committed; the pending record expires on its own
		srv.log(ctx).Error("Failed to delete pending account", slog.String("email", email), slog.Any("error", err))
	}

	srv.log(ctx).Info("Account verified", slog.Any("account_id", account.ID), slog.String("email", email))

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAccountVerified, map[string]string{
		"account_id": account.ID.String(),
		"email":      account.Email,
		"method":     "email",
	})

	return &usecase.VerifiedReceipt{Account: account}, nil
}

func (srv *registrationService) verificationEmail(pending *entity.PendingAccount, token string) *service.EmailMessage {
	link := srv.verificationBaseURL + "/verify-email?token=" + url.QueryEscape(token)
	minutes := int(srv.pendingTTL.Minutes())

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Hi %s,</p>
	<p>Thanks for signing up. Confirm your email address to activate your account:</p>
	<p><a href="%s">Verify email</a></p>
	<p>This link expires in %d minutes. If it has expired, please register again.</p>
</body>
</html>`, html.EscapeString(pending.FullName), html.EscapeString(link), minutes)

	textBody := fmt.Sprintf(`Hi %s,

Thanks for signing up. Confirm your email address to activate your account:
%s

This link expires in %d minutes. If it has expired, please register again.
`, pending.FullName, link, minutes)

	return &service.EmailMessage{
		To:       pending.Email,
		Subject:  verificationSubject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}
