package queries

import (
	"context"

	"tracking/internal/core/ports"
)

type GetParcelQueryHandler struct {
	reader
}

func NewGetParcelQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) GetParcelQueryHandler {
	return GetParcelQueryHandler{reader: newReader(factory, codec, clock, metrics)}
}

// Handle reports a parcel held by another courier as NotFound.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	repos := h.factory.Create()
	courier, err := h.authenticate(ctx, repos, query.Token())
	if err != nil {
		return ParcelResponse{}, err
	}

	p, err := h.stateMachine(repos).Get(ctx, query.ParcelID(), courier.ID())
	if err != nil {
		recordViolation(h.metrics, err)
		return ParcelResponse{}, err
	}
	return NewParcelResponse(p), nil
}

type GetProofQueryHandler struct {
	reader
}

func NewGetProofQueryHandler(
	factory RepositoriesFactory,
	codec ports.TokenCodec,
	clock ports.Clock,
	metrics ports.Metrics,
) GetProofQueryHandler {
	return GetProofQueryHandler{reader: newReader(factory, codec, clock, metrics)}
}

// Handle returns services.ErrProofNotFound when the parcel is still open.
func (h GetProofQueryHandler) Handle(ctx context.Context, query GetProofQuery) (ProofResponse, error) {
	if err := query.Validate(); err != nil {
		return ProofResponse{}, err
	}

	repos := h.factory.Create()
	courier, err := h.authenticate(ctx, repos, query.Token())
	if err != nil {
		return ProofResponse{}, err
	}

	pod, err := h.stateMachine(repos).GetProof(ctx, query.ParcelID(), courier.ID())
	if err != nil {
		recordViolation(h.metrics, err)
		return ProofResponse{}, err
	}
	return NewProofResponse(pod), nil
}
