package commands_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/domain/model/session"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByHandle(ctx context.Context, handle string) (*account.Account, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) FindActiveByToken(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) DeactivateAllForAccount(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DeactivateByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) DeactivateExpired(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) List(ctx context.Context, f ports.ParcelFilter) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockProofRepository struct{ mock.Mock }

func (m *MockProofRepository) Add(ctx context.Context, p *proof.ProofOfDelivery) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProofRepository) ExistsForParcel(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProofRepository) GetByParcel(ctx context.Context, id kernel.UUID) (*proof.ProofOfDelivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proof.ProofOfDelivery), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work view.
type MockUoW struct {
	mock.Mock
	accounts *MockAccountRepository
	sessions *MockSessionRepository
	parcels  *MockParcelRepository
	proofs   *MockProofRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		accounts: new(MockAccountRepository),
		sessions: new(MockSessionRepository),
		parcels:  new(MockParcelRepository),
		proofs:   new(MockProofRepository),
	}
}

// expectTx allows Begin and the deferred Rollback; commit says whether Commit
// must also happen.
func (m *MockUoW) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) AccountRepository() ports.AccountRepository { return m.accounts }
func (m *MockUoW) SessionRepository() ports.SessionRepository { return m.sessions }
func (m *MockUoW) ParcelRepository() ports.ParcelRepository   { return m.parcels }
func (m *MockUoW) ProofRepository() ports.ProofRepository     { return m.proofs }

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.accounts.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.proofs.AssertExpectations(t)
}

type authFactory struct{ uow *MockUoW }

func (f authFactory) Create() commands.AuthUoW { return f.uow }

type sessionFactory struct{ uow *MockUoW }

func (f sessionFactory) Create() commands.SessionUoW { return f.uow }

type deliveryFactory struct{ uow *MockUoW }

func (f deliveryFactory) Create() commands.DeliveryUoW { return f.uow }

type accountFactory struct{ uow *MockUoW }

func (f accountFactory) Create() commands.AccountUoW { return f.uow }

type parcelFactory struct{ uow *MockUoW }

func (f parcelFactory) Create() commands.ParcelUoW { return f.uow }

// stubVerifier hashes by prefixing and counts comparisons.
type stubVerifier struct {
	mu     sync.Mutex
	checks []string
}

func (v *stubVerifier) Hash(secret string) (string, error) {
	return "hash:" + secret, nil
}

func (v *stubVerifier) Verify(secret, digest string) bool {
	v.mu.Lock()
	v.checks = append(v.checks, digest)
	v.mu.Unlock()
	return digest == "hash:"+secret
}

var errBadToken = errors.New("invalid token")

// stubCodec issues "tok-<sub>-<n>" and decodes only what it issued.
type stubCodec struct {
	issued map[string]ports.Claims
	ttl    time.Duration
	clock  ports.Clock
}

func newStubCodec(clk ports.Clock) *stubCodec {
	return &stubCodec{issued: map[string]ports.Claims{}, ttl: 8 * time.Hour, clock: clk}
}

func (c *stubCodec) Issue(claims ports.Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	token := "tok-" + claims.Subject() + "-" + strings.Repeat("x", len(c.issued)+1)
	c.issued[token] = claims
	return token, c.clock.Now().Add(ttl).Truncate(time.Second), nil
}

func (c *stubCodec) Decode(token string) (ports.Claims, error) {
	claims, ok := c.issued[token]
	if !ok {
		return nil, errBadToken
	}
	return claims, nil
}

// give registers token for subject without going through Issue.
func (c *stubCodec) give(token string, subject kernel.UUID) {
	c.issued[token] = ports.Claims{ports.ClaimSubject: subject.String()}
}

type spyMetrics struct {
	mu     sync.Mutex
	events []string
}

func (s *spyMetrics) add(e string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *spyMetrics) RecordLogin(r string)             { s.add("login:" + r) }
func (s *spyMetrics) RecordAuthFailure(r string)       { s.add("auth:" + r) }
func (s *spyMetrics) RecordSessionsSuperseded(int64)   { s.add("superseded") }
func (s *spyMetrics) RecordSessionsSwept(int64)        { s.add("swept") }
func (s *spyMetrics) RecordDeliveryConfirmed(o string) { s.add("confirmed:" + o) }
func (s *spyMetrics) RecordStateViolation(v string)    { s.add("violation:" + v) }

func newClock() *clock.Manual {
	return clock.NewManual(now)
}

func mustAccount(handle string, active bool) *account.Account {
	a, err := account.RestoreAccount(kernel.NewUUID(), handle, "hash:secret123", "Courier "+handle,
		"", "", active, nil, now.Add(-24*time.Hour))
	if err != nil {
		panic(err)
	}
	return a
}

func mustSession(a *account.Account, token string) *session.Session {
	s, err := session.NewSession(kernel.NewUUID(), a.ID(), token, "", "", now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		panic(err)
	}
	return s
}

func mustParcel(courier *account.Account) *parcel.Parcel {
	dest, err := parcel.NewDestination("Av. Juárez", "10", "Centro", "CDMX", "06000", "", nil)
	if err != nil {
		panic(err)
	}
	p, err := parcel.NewParcel(kernel.NewUUID(), "PQX-"+kernel.NewUUID().String()[:8], "Ana", "", dest, "", now.Add(-2*time.Hour))
	if err != nil {
		panic(err)
	}
	if courier != nil {
		if err := p.AssignTo(courier.ID(), now.Add(-time.Hour)); err != nil {
			panic(err)
		}
	}
	return p
}

// expectIdentity wires the repository calls of a successful token resolution.
func expectIdentity(uow *MockUoW, codec *stubCodec, a *account.Account, token string) {
	codec.give(token, a.ID())
	uow.sessions.On("FindActiveByToken", mock.Anything, token).Return(mustSession(a, token), nil).Once()
	uow.accounts.On("Get", mock.Anything, a.ID()).Return(a, nil).Once()
}
