package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/domain/services"
	"tracking/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ProofSubmission is the raw proof a courier sends. Outcome is a wire code;
// empty means success.
type ProofSubmission struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64
	Evidence       []byte
	ReceiverName   string
	Outcome        string
	FailureReason  string
	Comments       string
}

// ConfirmDeliveryCommand closes a parcel with its proof of delivery.
type ConfirmDeliveryCommand struct {
	token    string
	parcelID kernel.UUID
	input    services.ProofInput

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand validates coordinates and outcome up front; the
// remaining proof rules are enforced when the proof is built.
func NewConfirmDeliveryCommand(token string, parcelID kernel.UUID, sub ProofSubmission) (ConfirmDeliveryCommand, error) {
	c := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	point, pointErr := kernel.NewGeoPoint(sub.Latitude, sub.Longitude)
	outcome, outcomeErr := proof.ParseOutcome(sub.Outcome)

	if err := errors.Join(
		setToken(&c.token, token),
		setParcelID(&c.parcelID, parcelID),
		pointErr,
		outcomeErr,
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	var evidence []byte
	if len(sub.Evidence) > 0 {
		evidence = append([]byte(nil), sub.Evidence...)
	}

	c.input = services.ProofInput{
		Point:          point,
		AccuracyMeters: sub.AccuracyMeters,
		Evidence:       evidence,
		ReceiverName:   sub.ReceiverName,
		Outcome:        outcome,
		FailureReason:  sub.FailureReason,
		Comments:       sub.Comments,
	}
	return c, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Token() string              { return c.token }
func (c ConfirmDeliveryCommand) ParcelID() kernel.UUID      { return c.parcelID }
func (c ConfirmDeliveryCommand) Input() services.ProofInput { return c.input }
