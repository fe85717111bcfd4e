package proof

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	ReceiverNameMaxLength = 120
	EvidenceMaxBytes      = 8 << 20
)

var ErrProofIsNotConstructed = errors.New("ProofOfDelivery must be created via NewProofOfDelivery constructor")

// ProofOfDelivery is immutable once created. Storage keeps at most one per parcel.
type ProofOfDelivery struct {
	id             kernel.UUID
	parcelID       kernel.UUID
	courierID      kernel.UUID
	point          kernel.GeoPoint
	accuracyMeters *float64
	evidence       []byte
	receiverName   string
	outcome        Outcome
	failureReason  string
	comments       string
	recordedAt     time.Time

	guard guard.ConstructorGuard
}

// NewProofOfDelivery validates a courier's submission. accuracyMeters, evidence
// and receiverName are optional.
func NewProofOfDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	point kernel.GeoPoint,
	accuracyMeters *float64,
	evidence []byte,
	receiverName string,
	outcome Outcome,
	failureReason string,
	comments string,
	recordedAt time.Time,
) (*ProofOfDelivery, error) {
	p := &ProofOfDelivery{
		failureReason: strings.TrimSpace(failureReason),
		comments:      strings.TrimSpace(comments),
		recordedAt:    recordedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setRefs(parcelID, courierID),
		p.setPoint(point),
		p.setAccuracy(accuracyMeters),
		p.setEvidence(evidence),
		p.setReceiverName(receiverName),
		p.setOutcome(outcome),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProofOfDelivery rebuilds a stored proof.
func RestoreProofOfDelivery(
	id kernel.UUID,
	parcelID kernel.UUID,
	courierID kernel.UUID,
	point kernel.GeoPoint,
	accuracyMeters *float64,
	evidence []byte,
	receiverName string,
	outcome Outcome,
	failureReason string,
	comments string,
	recordedAt time.Time,
) (*ProofOfDelivery, error) {
	return NewProofOfDelivery(id, parcelID, courierID, point, accuracyMeters, evidence,
		receiverName, outcome, failureReason, comments, recordedAt)
}

func (p *ProofOfDelivery) Validate() error {
	if p == nil {
		return ErrProofIsNotConstructed
	}
	return p.guard.Validate(ErrProofIsNotConstructed)
}

func (p *ProofOfDelivery) ID() kernel.UUID        { return p.id }
func (p *ProofOfDelivery) ParcelID() kernel.UUID  { return p.parcelID }
func (p *ProofOfDelivery) CourierID() kernel.UUID { return p.courierID }
func (p *ProofOfDelivery) Point() kernel.GeoPoint { return p.point }
func (p *ProofOfDelivery) ReceiverName() string   { return p.receiverName }
func (p *ProofOfDelivery) Outcome() Outcome       { return p.outcome }
func (p *ProofOfDelivery) FailureReason() string  { return p.failureReason }
func (p *ProofOfDelivery) Comments() string       { return p.comments }
func (p *ProofOfDelivery) RecordedAt() time.Time  { return p.recordedAt }

func (p *ProofOfDelivery) AccuracyMeters() *float64 {
	if p.accuracyMeters == nil {
		return nil
	}
	v := *p.accuracyMeters
	return &v
}

// Evidence returns a copy of the opaque evidence blob.
func (p *ProofOfDelivery) Evidence() []byte {
	if p.evidence == nil {
		return nil
	}
	return append([]byte(nil), p.evidence...)
}

func (p *ProofOfDelivery) HasEvidence() bool {
	return len(p.evidence) > 0
}

func (p *ProofOfDelivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *ProofOfDelivery) setRefs(parcelID, courierID kernel.UUID) error {
	var errParcel, errCourier error
	if err := parcelID.Validate(); err != nil {
		errParcel = errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	if err := courierID.Validate(); err != nil {
		errCourier = errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	if err := errors.Join(errParcel, errCourier); err != nil {
		return err
	}
	p.parcelID = parcelID
	p.courierID = courierID
	return nil
}

func (p *ProofOfDelivery) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.point = point
	return nil
}

func (p *ProofOfDelivery) setAccuracy(v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return errs.NewValueIsOutOfRangeError("accuracyMeters", *v, 0, math.Inf(1))
	}
	a := *v
	p.accuracyMeters = &a
	return nil
}

func (p *ProofOfDelivery) setEvidence(b []byte) error {
	if len(b) > EvidenceMaxBytes {
		return errs.NewValueIsOutOfRangeError("evidence size", len(b), 0, EvidenceMaxBytes)
	}
	if len(b) > 0 {
		p.evidence = append([]byte(nil), b...)
	}
	return nil
}

func (p *ProofOfDelivery) setReceiverName(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n > ReceiverNameMaxLength {
		return errs.NewValueIsOutOfRangeError("receiverName length", n, 0, ReceiverNameMaxLength)
	}
	p.receiverName = name
	return nil
}

func (p *ProofOfDelivery) setOutcome(o Outcome) error {
	if err := o.Validate(); err != nil {
		return err
	}
	p.outcome = o
	return nil
}
