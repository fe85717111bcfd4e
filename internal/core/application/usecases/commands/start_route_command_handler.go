package commands

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// StartRouteCommandHandler authenticates the caller and starts the route of a
// parcel they hold.
type StartRouteCommandHandler struct {
	uowFactory DeliveryUoWFactory
	codec      ports.TokenCodec
	clock      ports.Clock
	metrics    ports.Metrics
}

func NewStartRouteCommandHandler(
	uowFactory DeliveryUoWFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) StartRouteCommandHandler {
	return StartRouteCommandHandler{uowFactory: uowFactory, codec: codec, clock: clock, metrics: metrics}
}

// Handle returns *services.AuthError when the token does not resolve and
// *parcel.StateError when the transition is refused.
func (h StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courier, err := authenticate(ctx, uow, h.codec, h.clock, h.metrics, cmd.Token())
	if err != nil {
		return nil, err
	}

	sm := services.NewDeliveryStateMachine(uow.ParcelRepository(), uow.ProofRepository(), h.clock)
	p, err := sm.StartRoute(ctx, cmd.ParcelID(), courier.ID(), cmd.Note())
	if err != nil {
		recordViolation(h.metrics, err)
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func recordViolation(metrics ports.Metrics, err error) {
	var stateErr *parcel.StateError
	if errors.As(err, &stateErr) {
		metrics.RecordStateViolation(stateErr.Violation.Code())
	}
}
