package proofrepo

import (
	"context"

	"tracking/internal/adapters/out/postgres/dberr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/proof"

	"gorm.io/gorm"
)

// GormProofRepository implements ports.ProofRepository using GORM. Rows are
// insert-only.
type GormProofRepository struct {
	db *gorm.DB
}

func NewGormProofRepository(db *gorm.DB) *GormProofRepository {
	return &GormProofRepository{db: db}
}

// Add inserts the proof. The unique parcel_id index turns a racing second
// insert into *errs.ObjectAlreadyExistsError.
func (r *GormProofRepository) Add(ctx context.Context, aggregate *proof.ProofOfDelivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "proof", aggregate.ParcelID().String())
	}
	return nil
}

func (r *GormProofRepository) ExistsForParcel(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProofDTO{}).
		Where("parcel_id = ?", parcelID.Bytes()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormProofRepository) GetByParcel(ctx context.Context, parcelID kernel.UUID) (*proof.ProofOfDelivery, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto ProofDTO
	if err := r.db.WithContext(ctx).First(&dto, "parcel_id = ?", parcelID.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "proof", parcelID.String())
	}
	return toDomain(dto)
}
