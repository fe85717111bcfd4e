package services

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// ErrProofNotFound is returned by GetProof when the parcel has no proof yet.
var ErrProofNotFound = errs.NewObjectNotFoundError("proof", "parcel has no proof of delivery")

// ProofInput is what a courier submits to close a parcel.
type ProofInput struct {
	Point          kernel.GeoPoint
	AccuracyMeters *float64
	Evidence       []byte
	ReceiverName   string
	Outcome        proof.Outcome
	FailureReason  string
	Comments       string
}

// DeliveryStateMachine drives parcel transitions on behalf of the assigned
// courier and attaches the one proof of delivery.
type DeliveryStateMachine struct {
	parcels      ports.ParcelRepository
	proofs       ports.ProofRepository
	clock        ports.Clock
	historyLimit int
}

// DeliveryOption customizes a DeliveryStateMachine.
type DeliveryOption func(*DeliveryStateMachine)

// WithHistoryLimit sets the history size used when callers pass no limit.
// It is clamped to [1, MaxHistoryLimit].
func WithHistoryLimit(n int) DeliveryOption {
	return func(m *DeliveryStateMachine) {
		m.historyLimit = ClampHistoryLimit(n, DefaultHistoryLimit)
	}
}

func NewDeliveryStateMachine(
	parcels ports.ParcelRepository,
	proofs ports.ProofRepository,
	clock ports.Clock,
	opts ...DeliveryOption,
) DeliveryStateMachine {
	m := DeliveryStateMachine{
		parcels:      parcels,
		proofs:       proofs,
		clock:        clock,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// ClampHistoryLimit maps limit < 1 to fallback and caps the result at MaxHistoryLimit.
func ClampHistoryLimit(limit, fallback int) int {
	if limit < 1 {
		limit = fallback
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return limit
}

// Get returns the parcel if courierID holds it. A parcel held by someone else
// is reported as NotFound.
func (m DeliveryStateMachine) Get(ctx context.Context, parcelID, courierID kernel.UUID) (*parcel.Parcel, error) {
	p, err := m.parcels.Get(ctx, parcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, parcel.NewNotFoundError(parcelID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("load parcel: %w", err)
	}
	if !p.IsOwnedBy(courierID) {
		return nil, parcel.NewNotFoundError(parcelID.String())
	}
	return p, nil
}

// List returns the courier's parcels newest first, optionally limited to one status.
func (m DeliveryStateMachine) List(ctx context.Context, courierID kernel.UUID, status *parcel.Status) ([]*parcel.Parcel, error) {
	filter := ports.ParcelFilter{CourierID: courierID, Order: ports.OrderByCreated}
	if status != nil {
		if err := status.Validate(); err != nil {
			return nil, err
		}
		filter.Statuses = []parcel.Status{*status}
	}
	return m.list(ctx, filter)
}

// Pending lists Assigned parcels, most recently assigned first.
func (m DeliveryStateMachine) Pending(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	return m.list(ctx, ports.ParcelFilter{
		CourierID: courierID,
		Statuses:  []parcel.Status{parcel.Assigned},
		Order:     ports.OrderByAssigned,
	})
}

// EnRoute lists EnRoute parcels, most recently assigned first.
func (m DeliveryStateMachine) EnRoute(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	return m.list(ctx, ports.ParcelFilter{
		CourierID: courierID,
		Statuses:  []parcel.Status{parcel.EnRoute},
		Order:     ports.OrderByAssigned,
	})
}

// History lists Completed and Failed parcels by completion time, newest first.
func (m DeliveryStateMachine) History(ctx context.Context, courierID kernel.UUID, limit int) ([]*parcel.Parcel, error) {
	return m.list(ctx, ports.ParcelFilter{
		CourierID: courierID,
		Statuses:  []parcel.Status{parcel.Completed, parcel.Failed},
		Order:     ports.OrderByCompleted,
		Limit:     ClampHistoryLimit(limit, m.historyLimit),
	})
}

func (m DeliveryStateMachine) list(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	if err := filter.CourierID.Validate(); err != nil {
		return nil, err
	}
	parcels, err := m.parcels.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	return parcels, nil
}

// StartRoute moves an Assigned parcel to EnRoute. The parcel row stays locked
// until the caller's transaction ends.
func (m DeliveryStateMachine) StartRoute(ctx context.Context, parcelID, courierID kernel.UUID, note string) (*parcel.Parcel, error) {
	p, err := m.lock(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err := p.StartRoute(courierID, note, m.clock.Now()); err != nil {
		return nil, err
	}

	if err := m.parcels.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update parcel: %w", err)
	}
	return p, nil
}

// ConfirmDelivery attaches the proof and closes the parcel: Completed for a
// Success outcome, Failed for Rejected or Partial.
//
// The existing-proof check runs before the status check so a repeated
// confirmation reports AlreadyConfirmed. Two racing confirmations are
// serialized by the parcel row lock; the unique index on the proof's parcel
// reference turns any remaining race into AlreadyConfirmed.
func (m DeliveryStateMachine) ConfirmDelivery(
	ctx context.Context,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	in ProofInput,
) (*parcel.Parcel, *proof.ProofOfDelivery, error) {
	p, err := m.lock(ctx, parcelID)
	if err != nil {
		return nil, nil, err
	}

	if err := p.CheckOwner(courierID); err != nil {
		return nil, nil, err
	}

	exists, err := m.proofs.ExistsForParcel(ctx, parcelID)
	if err != nil {
		return nil, nil, fmt.Errorf("check proof: %w", err)
	}
	if exists {
		return nil, nil, parcel.NewAlreadyConfirmedError(parcelID.String())
	}

	now := m.clock.Now()
	if err := p.Finish(courierID, in.Outcome.IsDelivered(), now); err != nil {
		return nil, nil, err
	}

	pod, err := proof.NewProofOfDelivery(
		kernel.NewUUID(),
		parcelID,
		courierID,
		in.Point,
		in.AccuracyMeters,
		in.Evidence,
		in.ReceiverName,
		in.Outcome,
		in.FailureReason,
		in.Comments,
		now,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := m.proofs.Add(ctx, pod); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil, nil, parcel.NewAlreadyConfirmedError(parcelID.String())
		}
		return nil, nil, fmt.Errorf("store proof: %w", err)
	}

	if err := m.parcels.Update(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("update parcel: %w", err)
	}

	return p, pod, nil
}

// GetProof returns the proof attached to a parcel the courier holds.
func (m DeliveryStateMachine) GetProof(ctx context.Context, parcelID, courierID kernel.UUID) (*proof.ProofOfDelivery, error) {
	if _, err := m.Get(ctx, parcelID, courierID); err != nil {
		return nil, err
	}
	pod, err := m.proofs.GetByParcel(ctx, parcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrProofNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load proof: %w", err)
	}
	return pod, nil
}

func (m DeliveryStateMachine) lock(ctx context.Context, parcelID kernel.UUID) (*parcel.Parcel, error) {
	p, err := m.parcels.GetForUpdate(ctx, parcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, parcel.NewNotFoundError(parcelID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("lock parcel: %w", err)
	}
	return p, nil
}
