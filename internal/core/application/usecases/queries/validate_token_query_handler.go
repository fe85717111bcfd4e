package queries

import (
	"context"
	"errors"

	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// Messages of ValidateTokenQueryResponse. Every authentication failure reads
// the same.
const (
	MessageTokenValid   = "token is valid"
	MessageTokenInvalid = "token is invalid or expired"
)

type ValidateTokenQueryHandler struct {
	reader
}

func NewValidateTokenQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) ValidateTokenQueryHandler {
	return ValidateTokenQueryHandler{reader: newReader(factory, codec, clock, metrics)}
}

// Handle turns authentication failures into an invalid response. Only
// storage failures come back as errors.
func (h ValidateTokenQueryHandler) Handle(ctx context.Context, query ValidateTokenQuery) (ValidateTokenQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateTokenQueryResponse{}, err
	}
	if query.Token() == "" {
		return ValidateTokenQueryResponse{Message: MessageTokenInvalid}, nil
	}

	a, err := h.authenticate(ctx, h.factory.Create(), query.Token())
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		return ValidateTokenQueryResponse{Message: MessageTokenInvalid, Failure: authErr}, nil
	}
	if err != nil {
		return ValidateTokenQueryResponse{}, err
	}

	resp := NewAccountResponse(a)
	return ValidateTokenQueryResponse{Valid: true, Message: MessageTokenValid, Account: &resp}, nil
}
