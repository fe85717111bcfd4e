package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
)

// CreateParcelCommandHandler stores a new parcel, assigned to the named
// courier when one is given.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      ports.Clock
}

func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory, clock ports.Clock) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns *errs.ObjectNotFoundError for an unknown courier handle and
// *errs.ObjectAlreadyExistsError for a taken tracking number.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	p, err := parcel.NewParcel(kernel.NewUUID(), cmd.TrackingNumber(), cmd.RecipientName(),
		cmd.RecipientPhone(), cmd.Destination(), cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.CourierHandle() != "" {
		courier, findErr := uow.AccountRepository().FindByHandle(ctx, cmd.CourierHandle())
		if findErr != nil {
			return nil, findErr
		}
		if err = p.AssignTo(courier.ID(), now); err != nil {
			return nil, err
		}
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
