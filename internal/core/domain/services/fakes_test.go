package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/domain/model/session"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// memSessions keeps sessions in memory and applies the bulk updates atomically.
type memSessions struct {
	mu   sync.Mutex
	rows []*session.Session
}

func (m *memSessions) Add(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Token() == s.Token() {
			return errs.NewObjectAlreadyExistsError("token", "***")
		}
	}
	m.rows = append(m.rows, s)
	return nil
}

func (m *memSessions) FindActiveByToken(_ context.Context, token string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Token() == token && r.IsFlaggedActive() {
			return r, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("token", "***")
}

func (m *memSessions) DeactivateAllForAccount(_ context.Context, id kernel.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.AccountID().IsEqual(id) && r.Deactivate() {
			n++
		}
	}
	return n, nil
}

func (m *memSessions) DeactivateByToken(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Token() == token && r.Deactivate() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSessions) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.rows {
		if r.IsExpiredAt(now) && r.Deactivate() {
			n++
		}
	}
	return n, nil
}

func (m *memSessions) activeFor(id kernel.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.AccountID().IsEqual(id) && r.IsFlaggedActive() {
			n++
		}
	}
	return n
}

type memAccounts struct {
	rows map[kernel.UUID]*account.Account
}

func newMemAccounts(accounts ...*account.Account) *memAccounts {
	m := &memAccounts{rows: map[kernel.UUID]*account.Account{}}
	for _, a := range accounts {
		m.rows[a.ID()] = a
	}
	return m
}

func (m *memAccounts) Add(_ context.Context, a *account.Account) error {
	m.rows[a.ID()] = a
	return nil
}

func (m *memAccounts) Update(_ context.Context, a *account.Account) error {
	m.rows[a.ID()] = a
	return nil
}

func (m *memAccounts) Get(_ context.Context, id kernel.UUID) (*account.Account, error) {
	if a, ok := m.rows[id]; ok {
		return a, nil
	}
	return nil, errs.NewObjectNotFoundError("accountID", id)
}

func (m *memAccounts) GetForUpdate(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	return m.Get(ctx, id)
}

func (m *memAccounts) FindByHandle(_ context.Context, handle string) (*account.Account, error) {
	for _, a := range m.rows {
		if a.Handle() == handle {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("handle", handle)
}

// memParcels stores parcels by value so an aggregate mutated by a failed call
// never leaks into storage without Update.
type memParcels struct {
	mu      sync.Mutex
	rows    map[kernel.UUID]parcel.Parcel
	updates int
}

func newMemParcels(parcels ...*parcel.Parcel) *memParcels {
	m := &memParcels{rows: map[kernel.UUID]parcel.Parcel{}}
	for _, p := range parcels {
		m.rows[p.ID()] = *p
	}
	return m
}

func (m *memParcels) Add(_ context.Context, p *parcel.Parcel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID()] = *p
	return nil
}

func (m *memParcels) Update(_ context.Context, p *parcel.Parcel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID()]; !ok {
		return errs.NewObjectNotFoundError("parcelID", p.ID())
	}
	m.rows[p.ID()] = *p
	m.updates++
	return nil
}

func (m *memParcels) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	return &p, nil
}

func (m *memParcels) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return m.Get(ctx, id)
}

func (m *memParcels) List(_ context.Context, f ports.ParcelFilter) ([]*parcel.Parcel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*parcel.Parcel
	for _, row := range m.rows {
		p := row
		if !p.IsOwnedBy(f.CourierID) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, p.Status()) {
			continue
		}
		out = append(out, &p)
	}
	key := func(p *parcel.Parcel) time.Time {
		switch f.Order {
		case ports.OrderByAssigned:
			return *p.AssignedAt()
		case ports.OrderByCompleted:
			return *p.CompletedAt()
		default:
			return p.CreatedAt()
		}
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]).After(key(out[j])) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memParcels) stored(id kernel.UUID) parcel.Parcel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func containsStatus(list []parcel.Status, s parcel.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// memProofs enforces one proof per parcel like the unique index does.
type memProofs struct {
	mu   sync.Mutex
	rows map[kernel.UUID]*proof.ProofOfDelivery
}

func newMemProofs() *memProofs {
	return &memProofs{rows: map[kernel.UUID]*proof.ProofOfDelivery{}}
}

func (m *memProofs) Add(_ context.Context, p *proof.ProofOfDelivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ParcelID()]; ok {
		return errs.NewObjectAlreadyExistsError("parcelID", p.ParcelID())
	}
	m.rows[p.ParcelID()] = p
	return nil
}

func (m *memProofs) ExistsForParcel(_ context.Context, id kernel.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memProofs) GetByParcel(_ context.Context, id kernel.UUID) (*proof.ProofOfDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[id]; ok {
		return p, nil
	}
	return nil, errs.NewObjectNotFoundError("parcelID", id)
}

func (m *memProofs) count(id kernel.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; ok {
		return 1
	}
	return 0
}

var errBadToken = errors.New("token is invalid")

// stubCodec treats the token text as "<subject>|<anything>"; "bad" tokens fail.
type stubCodec struct {
	subjects map[string]string
}

func (c stubCodec) Issue(ports.Claims, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not used")
}

func (c stubCodec) Decode(token string) (ports.Claims, error) {
	sub, ok := c.subjects[token]
	if !ok {
		return nil, errBadToken
	}
	return ports.Claims{ports.ClaimSubject: sub}, nil
}

// mockSessionRepository records calls for ordering assertions.
type mockSessionRepository struct{ mock.Mock }

func (m *mockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionRepository) FindActiveByToken(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockSessionRepository) DeactivateAllForAccount(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) DeactivateByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
