package queries

import (
	"context"

	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

type ParcelHistoryQueryHandler struct {
	reader
	defaultLimit int
}

// NewParcelHistoryQueryHandler uses defaultLimit when a query asks for none.
func NewParcelHistoryQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
	defaultLimit int,
) ParcelHistoryQueryHandler {
	return ParcelHistoryQueryHandler{
		reader:       newReader(factory, codec, clock, metrics),
		defaultLimit: defaultLimit,
	}
}

func (h ParcelHistoryQueryHandler) Handle(ctx context.Context, query ParcelHistoryQuery) (ParcelListResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelListResponse{}, err
	}

	repos := h.factory.Create()
	courier, err := h.authenticate(ctx, repos, query.Token())
	if err != nil {
		return ParcelListResponse{}, err
	}

	parcels, err := h.stateMachine(repos, services.WithHistoryLimit(h.defaultLimit)).
		History(ctx, courier.ID(), query.Limit())
	if err != nil {
		return ParcelListResponse{}, err
	}
	return NewParcelListResponse(parcels), nil
}
