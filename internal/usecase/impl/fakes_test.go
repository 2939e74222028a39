package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"coursemart/config"
	"coursemart/internal/domain/entity"
	"coursemart/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Session:      "session-secret-for-tests",
			Verification: "verification-secret-for-tests",
		},
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			SessionTTL:        time.Hour,
			VerificationTTL:   time.Hour,
			PendingAccountTTL: time.Hour,
		},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:      7,
			ForbiddenWords: []string{"password"},
		},
		Email: &config.EmailConfig{
			VerificationBaseURL: "https://coursemart.test",
		},
	}
}

// memState is an in-memory store honoring the same unique constraints as the
// database: one account per email, one open cart per owner, one order per cart.
type memState struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
	sessions map[uuid.UUID]*entity.SessionToken
	carts    map[uuid.UUID]*entity.Cart
	orders   map[uuid.UUID]*entity.Order

	// failOrderCreate makes the next order insert fail, to exercise rollbacks.
	failOrderCreate error
}

func newMemState() *memState {
	return &memState{
		accounts: map[uuid.UUID]*entity.Account{},
		sessions: map[uuid.UUID]*entity.SessionToken{},
		carts:    map[uuid.UUID]*entity.Cart{},
		orders:   map[uuid.UUID]*entity.Order{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.accounts {
		cp := *v
		c.accounts[k] = &cp
	}
	for k, v := range s.sessions {
		cp := *v
		c.sessions[k] = &cp
	}
	for k, v := range s.carts {
		cp := *v
		c.carts[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	c.failOrderCreate = s.failOrderCreate

	return c
}

type memStore struct {
	txMu  sync.Mutex
	state *memState
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (m *memStore) accountRepo() repository.AccountRepository {
	return &memAccountRepo{s: m.state}
}

func (m *memStore) sessionRepo() repository.SessionTokenRepository {
	return &memSessionRepo{s: m.state}
}

func (m *memStore) orderRepo() repository.OrderRepository {
	return &memOrderRepo{s: m.state}
}

// Execute runs fn on a copy of the state and keeps the copy only when fn succeeds.
func (m *memStore) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.state.mu.Lock()
	snapshot := m.state.clone()
	m.state.mu.Unlock()

	if err := fn(&memFactory{s: snapshot}); err != nil {
		return err
	}

	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.accounts = snapshot.accounts
	m.state.sessions = snapshot.sessions
	m.state.carts = snapshot.carts
	m.state.orders = snapshot.orders
	m.state.failOrderCreate = snapshot.failOrderCreate

	return nil
}

type memFactory struct{ s *memState }

func (f *memFactory) AccountRepo() repository.AccountRepository {
	return &memAccountRepo{s: f.s}
}

func (f *memFactory) SessionTokenRepo() repository.SessionTokenRepository {
	return &memSessionRepo{s: f.s}
}

func (f *memFactory) CartRepo() repository.CartRepository {
	return &memCartRepo{s: f.s}
}

func (f *memFactory) OrderRepo() repository.OrderRepository {
	return &memOrderRepo{s: f.s}
}

type memAccountRepo struct{ s *memState }

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Email == account.Email {
			return repository.ErrAccountAlreadyExists
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	cp := *account
	cp.Sessions = nil
	r.s.accounts[account.ID] = &cp

	return nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	cp.Sessions = entity.SessionSet{}
	now := time.Now()
	for _, tok := range r.s.sessions {
		if tok.AccountID == id && tok.ExpiresAt.After(now) {
			t := *tok
			cp.Sessions[t.ID] = &t
		}
	}

	return &cp, nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a

			return &cp, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)

	return err == nil, nil
}

func (r *memAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	cp := *account
	cp.Sessions = nil
	r.s.accounts[account.ID] = &cp

	return nil
}

type memSessionRepo struct{ s *memState }

func (r *memSessionRepo) Add(_ context.Context, token *entity.SessionToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[token.AccountID]; !ok {
		return repository.ErrAccountNotFound
	}
	cp := *token
	r.s.sessions[token.ID] = &cp

	return nil
}

func (r *memSessionRepo) Find(_ context.Context, accountID, tokenID uuid.UUID) (*entity.SessionToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tok, ok := r.s.sessions[tokenID]
	if !ok || tok.AccountID != accountID {
		return nil, repository.ErrSessionTokenNotFound
	}
	cp := *tok

	return &cp, nil
}

func (r *memSessionRepo) Remove(_ context.Context, accountID, tokenID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tok, ok := r.s.sessions[tokenID]
	if !ok || tok.AccountID != accountID {
		return false, nil
	}
	delete(r.s.sessions, tokenID)

	return true, nil
}

func (r *memSessionRepo) RemoveExpired(_ context.Context, accountID uuid.UUID, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, tok := range r.s.sessions {
		if tok.AccountID == accountID && !tok.ExpiresAt.After(cutoff) {
			delete(r.s.sessions, id)
			n++
		}
	}

	return n, nil
}

func (r *memSessionRepo) RemoveAll(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, tok := range r.s.sessions {
		if tok.AccountID == accountID {
			delete(r.s.sessions, id)
			n++
		}
	}

	return n, nil
}

type memCartRepo struct{ s *memState }

func (r *memCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.carts {
		if c.OwnerID == cart.OwnerID && c.Status == entity.CartStatusOpen {
			return repository.ErrCartAlreadyExists
		}
	}
	cp := *cart
	r.s.carts[cart.ID] = &cp

	return nil
}

func (r *memCartRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *c

	return &cp, nil
}

func (r *memCartRepo) FindOpenByOwner(_ context.Context, ownerID uuid.UUID) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.carts {
		if c.OwnerID == ownerID && c.Status == entity.CartStatusOpen {
			cp := *c

			return &cp, nil
		}
	}

	return nil, repository.ErrCartNotFound
}

func (r *memCartRepo) MarkCheckedOut(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[id]
	if !ok {
		return repository.ErrCartNotFound
	}
	c.Status = entity.CartStatusCheckedOut

	return nil
}

type memOrderRepo struct{ s *memState }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failOrderCreate != nil {
		return r.s.failOrderCreate
	}
	for _, o := range r.s.orders {
		if o.CartID == order.CartID {
			return repository.ErrOrderAlreadyExists
		}
	}
	cp := *order
	r.s.orders[order.ID] = &cp

	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o

	return &cp, nil
}

func (r *memOrderRepo) FindByCartID(_ context.Context, cartID uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.CartID == cartID {
			cp := *o

			return &cp, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

// memPendingRepo expires records against its clock, like the Redis TTL.
type memPendingRepo struct {
	mu      sync.Mutex
	now     func() time.Time
	records map[string]pendingRecord
}

type pendingRecord struct {
	pending   entity.PendingAccount
	expiresAt time.Time
}

func newMemPendingRepo(now func() time.Time) *memPendingRepo {
	return &memPendingRepo{now: now, records: map[string]pendingRecord{}}
}

func (r *memPendingRepo) Save(_ context.Context, pending *entity.PendingAccount, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[pending.Email] = pendingRecord{pending: *pending, expiresAt: r.now().Add(ttl)}

	return nil
}

func (r *memPendingRepo) FindByEmail(_ context.Context, email string) (*entity.PendingAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[email]
	if !ok || !r.now().Before(rec.expiresAt) {
		return nil, repository.ErrPendingAccountNotFound
	}
	cp := rec.pending

	return &cp, nil
}

func (r *memPendingRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, email)

	return nil
}
