package commands

import (
	"context"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// ConfirmDeliveryResult is the closed parcel and its proof.
type ConfirmDeliveryResult struct {
	Parcel *parcel.Parcel
	Proof  *proof.ProofOfDelivery
}

// ConfirmDeliveryCommandHandler authenticates the caller and records the proof
// of delivery for a parcel they hold. The parcel row is locked for the whole
// transaction; a racing second confirmation gets AlreadyConfirmed.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	codec      ports.TokenCodec
	clock      ports.Clock
	metrics    ports.Metrics
}

func NewConfirmDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{uowFactory: uowFactory, codec: codec, clock: clock, metrics: metrics}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (ConfirmDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courier, err := authenticate(ctx, uow, h.codec, h.clock, h.metrics, cmd.Token())
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	sm := services.NewDeliveryStateMachine(uow.ParcelRepository(), uow.ProofRepository(), h.clock)
	p, pod, err := sm.ConfirmDelivery(ctx, cmd.ParcelID(), courier.ID(), cmd.Input())
	if err != nil {
		recordViolation(h.metrics, err)
		return ConfirmDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	h.metrics.RecordDeliveryConfirmed(pod.Outcome().Code())
	return ConfirmDeliveryResult{Parcel: p, Proof: pod}, nil
}
