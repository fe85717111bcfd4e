package queries

import (
	"context"

	"tracking/internal/core/ports"
)

type WhoAmIQueryHandler struct {
	reader
}

func NewWhoAmIQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) WhoAmIQueryHandler {
	return WhoAmIQueryHandler{reader: newReader(factory, codec, clock, metrics)}
}

// Handle returns *services.AuthError for any token that does not resolve.
func (h WhoAmIQueryHandler) Handle(ctx context.Context, query WhoAmIQuery) (AccountResponse, error) {
	if err := query.Validate(); err != nil {
		return AccountResponse{}, err
	}

	a, err := h.authenticate(ctx, h.factory.Create(), query.Token())
	if err != nil {
		return AccountResponse{}, err
	}
	return NewAccountResponse(a), nil
}
