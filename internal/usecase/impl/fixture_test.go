package impl

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"coursemart/internal/domain/entity"
	"coursemart/internal/domain/service"
	"coursemart/internal/infra/auth"
	mockService "coursemart/internal/mocks/service"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memStore
	pending   *memPendingRepo
	tokens    service.TokenService
	hasher    service.PasswordHasher
	email     *mockService.MockEmailSender
	publisher *mockService.MockEventPublisher

	sessions     usecase.SessionUsecase
	registration *registrationService
	auth         usecase.AuthUsecase
	checkout     *checkoutService

	mu        sync.Mutex
	clock     time.Time
	sentMails []*service.EmailMessage
	events    []*service.DomainEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	f := &fixture{
		store:     newMemStore(),
		tokens:    tokens,
		hasher:    auth.NewBcryptHasher(cfg),
		email:     mockService.NewMockEmailSender(t),
		publisher: mockService.NewMockEventPublisher(t),
		clock:     time.Now(),
	}
	f.pending = newMemPendingRepo(f.now)

	f.email.EXPECT().Send(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, msg *service.EmailMessage) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.sentMails = append(f.sentMails, msg)

			return nil
		}).Maybe()
	f.publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, event *service.DomainEvent) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.events = append(f.events, event)

			return nil
		}).Maybe()

	f.sessions = NewSessionService(SessionServiceParams{
		AccountRepo:  f.store.accountRepo(),
		SessionRepo:  f.store.sessionRepo(),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})
	f.registration = NewRegistrationService(RegistrationServiceParams{
		AccountRepo:  f.store.accountRepo(),
		PendingRepo:  f.pending,
		Hasher:       f.hasher,
		TokenService: tokens,
		EmailSender:  f.email,
		Publisher:    f.publisher,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	}).(*registrationService)
	f.registration.now = f.now
	f.auth = NewAuthService(AuthServiceParams{
		AccountRepo: f.store.accountRepo(),
		Hasher:      f.hasher,
		Sessions:    f.sessions,
		Logger:      newDiscardLogger(),
	})
	f.checkout = NewCheckoutService(CheckoutServiceParams{
		TxManager: f.store,
		OrderRepo: f.store.orderRepo(),
		QRService: stubQRService{},
		Publisher: f.publisher,
		Logger:    newDiscardLogger(),
	}).(*checkoutService)

	return f
}

func (f *fixture) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.clock
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(d)
}

func (f *fixture) lastMail(t *testing.T) *service.EmailMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sentMails, "no email was sent")

	return f.sentMails[len(f.sentMails)-1]
}

func (f *fixture) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}

	return types
}

// verificationToken extracts the token from the link of a verification email.
func verificationToken(t *testing.T, msg *service.EmailMessage) string {
	t.Helper()

	_, rest, ok := strings.Cut(msg.TextBody, "/verify-email?token=")
	require.True(t, ok, "email carries no verification link")
	raw, _, _ := strings.Cut(rest, "\n")
	token, err := url.QueryUnescape(strings.TrimSpace(raw))
	require.NoError(t, err)

	return token
}

// createVerifiedAccount stores a password account directly.
func (f *fixture) createVerifiedAccount(t *testing.T, email, password string) *entity.Account {
	t.Helper()

	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	account := &entity.Account{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleStudent,
		IsVerified:   true,
	}
	require.NoError(t, f.store.accountRepo().Create(context.Background(), account))

	return account
}

type stubQRService struct{}

func (stubQRService) GenerateOrderReceiptQR(orderID uuid.UUID) ([]byte, error) {
	return []byte("png:" + orderID.String()), nil
}

func (stubQRService) ParseOrderReference(string) (uuid.UUID, error) {
	return uuid.Nil, nil
}
