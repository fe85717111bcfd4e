// Package parcelrepo maps parcels to the parcels table.
package parcelrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row shape of the parcels table. Status is stored by its
// wire code so the table reads the same as the API.
type ParcelDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TrackingNumber string         `gorm:"type:varchar(25);not null;uniqueIndex"`
	CourierID      *uuid.UUID     `gorm:"type:uuid;index"`
	RecipientName  string         `gorm:"type:varchar(120);not null"`
	RecipientPhone string         `gorm:"type:varchar(25);not null"`
	Destination    DestinationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Status         string         `gorm:"type:varchar(20);not null"`
	Notes          string         `gorm:"type:text;not null"`
	CreatedAt      time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	AssignedAt     *time.Time     `gorm:"type:timestamptz"`
	CompletedAt    *time.Time     `gorm:"type:timestamptz"`
	UpdatedAt      time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// DestinationDTO is embedded in the parcels row.
type DestinationDTO struct {
	Street         string   `gorm:"type:varchar(220);not null"`
	ExteriorNumber string   `gorm:"type:varchar(25);not null"`
	Neighborhood   string   `gorm:"type:varchar(120);not null"`
	City           string   `gorm:"type:varchar(120);not null"`
	PostalCode     string   `gorm:"type:varchar(12);not null"`
	References     string   `gorm:"type:text;not null"`
	Latitude       *float64 `gorm:"type:double precision"`
	Longitude      *float64 `gorm:"type:double precision"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	var courierID *uuid.UUID
	if p.CourierID() != nil {
		raw := p.CourierID().Bytes()
		courierID = &raw
	}

	d := p.Destination()
	dest := DestinationDTO{
		Street:         d.Street(),
		ExteriorNumber: d.ExteriorNumber(),
		Neighborhood:   d.Neighborhood(),
		City:           d.City(),
		PostalCode:     d.PostalCode(),
		References:     d.References(),
	}
	if pt := d.Point(); pt != nil {
		lat, lng := pt.Latitude(), pt.Longitude()
		dest.Latitude, dest.Longitude = &lat, &lng
	}

	return ParcelDTO{
		ID:             p.ID().Bytes(),
		TrackingNumber: p.TrackingNumber(),
		CourierID:      courierID,
		RecipientName:  p.RecipientName(),
		RecipientPhone: p.RecipientPhone(),
		Destination:    dest,
		Status:         p.Status().Code(),
		Notes:          p.Notes(),
		CreatedAt:      p.CreatedAt(),
		AssignedAt:     p.AssignedAt(),
		CompletedAt:    p.CompletedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromGoogle(*dto.CourierID)
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	var point *kernel.GeoPoint
	if dto.Destination.Latitude != nil && dto.Destination.Longitude != nil {
		pt, pErr := kernel.NewGeoPoint(*dto.Destination.Latitude, *dto.Destination.Longitude)
		if pErr != nil {
			return nil, pErr
		}
		point = &pt
	}

	dest, err := parcel.NewDestination(
		dto.Destination.Street,
		dto.Destination.ExteriorNumber,
		dto.Destination.Neighborhood,
		dto.Destination.City,
		dto.Destination.PostalCode,
		dto.Destination.References,
		point,
	)
	if err != nil {
		return nil, err
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(id, dto.TrackingNumber, dto.RecipientName, dto.RecipientPhone, dest,
		courierID, status, dto.Notes, dto.CreatedAt, dto.AssignedAt, dto.CompletedAt, dto.UpdatedAt)
}
