// Package proofrepo maps proofs of delivery to the proofs_of_delivery table.
package proofrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/proof"

	"github.com/google/uuid"
)

// ProofDTO is the row shape of proofs_of_delivery. parcel_id is unique.
type ProofDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CourierID      uuid.UUID `gorm:"type:uuid;not null"`
	Latitude       float64   `gorm:"type:double precision;not null"`
	Longitude      float64   `gorm:"type:double precision;not null"`
	AccuracyMeters *float64  `gorm:"type:double precision"`
	Evidence       []byte    `gorm:"type:bytea"`
	ReceiverName   string    `gorm:"type:varchar(120);not null"`
	Outcome        string    `gorm:"type:varchar(20);not null"`
	FailureReason  string    `gorm:"type:text;not null"`
	Comments       string    `gorm:"type:text;not null"`
	RecordedAt     time.Time `gorm:"type:timestamptz;not null"`
}

func (ProofDTO) TableName() string {
	return "proofs_of_delivery"
}

func fromDomain(p *proof.ProofOfDelivery) ProofDTO {
	return ProofDTO{
		ID:             p.ID().Bytes(),
		ParcelID:       p.ParcelID().Bytes(),
		CourierID:      p.CourierID().Bytes(),
		Latitude:       p.Point().Latitude(),
		Longitude:      p.Point().Longitude(),
		AccuracyMeters: p.AccuracyMeters(),
		Evidence:       p.Evidence(),
		ReceiverName:   p.ReceiverName(),
		Outcome:        p.Outcome().Code(),
		FailureReason:  p.FailureReason(),
		Comments:       p.Comments(),
		RecordedAt:     p.RecordedAt(),
	}
}

func toDomain(dto ProofDTO) (*proof.ProofOfDelivery, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromGoogle(dto.ParcelID)
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromGoogle(dto.CourierID)
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	outcome, err := proof.ParseOutcome(dto.Outcome)
	if err != nil {
		return nil, err
	}

	return proof.RestoreProofOfDelivery(id, parcelID, courierID, point, dto.AccuracyMeters, dto.Evidence,
		dto.ReceiverName, outcome, dto.FailureReason, dto.Comments, dto.RecordedAt)
}
