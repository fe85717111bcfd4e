package parcelrepo

import (
	"context"

	"tracking/internal/adapters/out/postgres/dberr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add inserts a new parcel. A taken tracking number yields *errs.ObjectAlreadyExistsError.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "parcel", aggregate.TrackingNumber())
	}
	return nil
}

func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "parcel", aggregate.TrackingNumber())
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound, "parcel", aggregate.ID().String())
	}
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// List returns the courier's parcels newest first by the filter's sort key.
// Rows with a null sort key come last; id breaks ties so paging is stable.
func (r *GormParcelRepository) List(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	if err := filter.CourierID.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Where("courier_id = ?", filter.CourierID.Bytes())
	if len(filter.Statuses) > 0 {
		codes := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			codes = append(codes, s.Code())
		}
		q = q.Where("status IN ?", codes)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: orderColumn(filter.Order) + " DESC NULLS LAST", Raw: true}},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}})
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var dtos []ParcelDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *GormParcelRepository) get(db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "parcel", id.String())
	}
	return toDomain(dto)
}

func orderColumn(o ports.ParcelOrder) string {
	switch o {
	case ports.OrderByAssigned:
		return "assigned_at"
	case ports.OrderByCompleted:
		return "completed_at"
	default:
		return "created_at"
	}
}
