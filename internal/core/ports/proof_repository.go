package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/proof"
)

// ProofRepository persists proofs of delivery. Storage holds a uniqueness
// constraint on the parcel reference.
type ProofRepository interface {
	// Add inserts the proof. A second proof for the same parcel yields
	// *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, p *proof.ProofOfDelivery) error

	ExistsForParcel(ctx context.Context, parcelID kernel.UUID) (bool, error)

	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*proof.ProofOfDelivery, error)
}
