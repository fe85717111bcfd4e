package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
)

// ParcelOrder selects the sort key of a parcel listing. All orders are descending.
type ParcelOrder int

const (
	OrderByCreated ParcelOrder = iota
	OrderByAssigned
	OrderByCompleted
)

// ParcelFilter narrows a courier's parcel listing.
// Empty Statuses means any status; Limit <= 0 means no limit.
type ParcelFilter struct {
	CourierID kernel.UUID
	Statuses  []parcel.Status
	Order     ParcelOrder
	Limit     int
}

type ParcelRepository interface {
	// Add stores a new parcel. A taken tracking number yields *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, p *parcel.Parcel) error

	Update(ctx context.Context, p *parcel.Parcel) error

	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate loads the parcel and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	List(ctx context.Context, filter ParcelFilter) ([]*parcel.Parcel, error)
}
