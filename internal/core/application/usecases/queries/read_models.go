package queries

import (
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
)

// AccountResponse is the courier profile. The password hash never leaves the domain.
type AccountResponse struct {
	ID         kernel.UUID
	Handle     string
	FullName   string
	Email      string
	Phone      string
	Active     bool
	CreatedAt  time.Time
	LastSeenAt *time.Time
}

func NewAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID(),
		Handle:     a.Handle(),
		FullName:   a.FullName(),
		Email:      a.Email(),
		Phone:      a.Phone(),
		Active:     a.IsActive(),
		CreatedAt:  a.CreatedAt(),
		LastSeenAt: a.LastSeenAt(),
	}
}

type DestinationResponse struct {
	Street         string
	ExteriorNumber string
	Neighborhood   string
	City           string
	PostalCode     string
	References     string
	FullAddress    string
	Latitude       *float64
	Longitude      *float64
}

type ParcelResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	CourierID      *kernel.UUID
	RecipientName  string
	RecipientPhone string
	Destination    DestinationResponse
	Status         parcel.Status
	Notes          string
	CreatedAt      time.Time
	AssignedAt     *time.Time
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

func NewParcelResponse(p *parcel.Parcel) ParcelResponse {
	d := p.Destination()
	dest := DestinationResponse{
		Street:         d.Street(),
		ExteriorNumber: d.ExteriorNumber(),
		Neighborhood:   d.Neighborhood(),
		City:           d.City(),
		PostalCode:     d.PostalCode(),
		References:     d.References(),
		FullAddress:    d.FullAddress(),
	}
	if pt := d.Point(); pt != nil {
		lat, lng := pt.Latitude(), pt.Longitude()
		dest.Latitude, dest.Longitude = &lat, &lng
	}

	return ParcelResponse{
		ID:             p.ID(),
		TrackingNumber: p.TrackingNumber(),
		CourierID:      p.CourierID(),
		RecipientName:  p.RecipientName(),
		RecipientPhone: p.RecipientPhone(),
		Destination:    dest,
		Status:         p.Status(),
		Notes:          p.Notes(),
		CreatedAt:      p.CreatedAt(),
		AssignedAt:     p.AssignedAt(),
		CompletedAt:    p.CompletedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// ParcelListResponse keeps the repository order.
type ParcelListResponse struct {
	Total   int
	Parcels []ParcelResponse
}

func NewParcelListResponse(parcels []*parcel.Parcel) ParcelListResponse {
	out := make([]ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, NewParcelResponse(p))
	}
	return ParcelListResponse{Total: len(out), Parcels: out}
}

type ProofResponse struct {
	ID             kernel.UUID
	ParcelID       kernel.UUID
	CourierID      kernel.UUID
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64
	Evidence       []byte
	ReceiverName   string
	Outcome        proof.Outcome
	FailureReason  string
	Comments       string
	RecordedAt     time.Time
}

func NewProofResponse(p *proof.ProofOfDelivery) ProofResponse {
	return ProofResponse{
		ID:             p.ID(),
		ParcelID:       p.ParcelID(),
		CourierID:      p.CourierID(),
		Latitude:       p.Point().Latitude(),
		Longitude:      p.Point().Longitude(),
		AccuracyMeters: p.AccuracyMeters(),
		Evidence:       p.Evidence(),
		ReceiverName:   p.ReceiverName(),
		Outcome:        p.Outcome(),
		FailureReason:  p.FailureReason(),
		Comments:       p.Comments(),
		RecordedAt:     p.RecordedAt(),
	}
}
