package queries

import (
	"context"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
)

type ListParcelsQueryHandler struct {
	reader
}

func NewListParcelsQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{reader: newReader(factory, codec, clock, metrics)}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (ParcelListResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelListResponse{}, err
	}

	repos := h.factory.Create()
	courier, err := h.authenticate(ctx, repos, query.Token())
	if err != nil {
		return ParcelListResponse{}, err
	}

	sm := h.stateMachine(repos)

	var parcels []*parcel.Parcel
	switch query.View() {
	case PendingParcels:
		parcels, err = sm.Pending(ctx, courier.ID())
	case EnRouteParcels:
		parcels, err = sm.EnRoute(ctx, courier.ID())
	default:
		parcels, err = sm.List(ctx, courier.ID(), query.Status())
	}
	if err != nil {
		return ParcelListResponse{}, err
	}
	return NewParcelListResponse(parcels), nil
}
