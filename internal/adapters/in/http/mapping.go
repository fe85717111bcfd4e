package http

import (
	"tracking/internal/core/application/usecases/queries"

	"github.com/google/uuid"
)

func toAccount(a queries.AccountResponse) Account {
	return Account{
		ID:         a.ID.Bytes(),
		Handle:     a.Handle,
		FullName:   a.FullName,
		Email:      a.Email,
		Phone:      a.Phone,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		LastSeenAt: a.LastSeenAt,
	}
}

func toParcel(p queries.ParcelResponse) Parcel {
	var courierID *uuid.UUID
	if p.CourierID != nil {
		id := p.CourierID.Bytes()
		courierID = &id
	}

	d := p.Destination
	return Parcel{
		ID:             p.ID.Bytes(),
		TrackingNumber: p.TrackingNumber,
		CourierID:      courierID,
		RecipientName:  p.RecipientName,
		RecipientPhone: p.RecipientPhone,
		Destination: Destination{
			Street:         d.Street,
			ExteriorNumber: d.ExteriorNumber,
			Neighborhood:   d.Neighborhood,
			City:           d.City,
			PostalCode:     d.PostalCode,
			References:     d.References,
			FullAddress:    d.FullAddress,
			Latitude:       d.Latitude,
			Longitude:      d.Longitude,
		},
		Status:      p.Status.Code(),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		AssignedAt:  p.AssignedAt,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toParcelList(l queries.ParcelListResponse) ParcelList {
	out := ParcelList{Total: l.Total, Parcels: make([]Parcel, 0, len(l.Parcels))}
	for _, p := range l.Parcels {
		out.Parcels = append(out.Parcels, toParcel(p))
	}
	return out
}

func toProof(p queries.ProofResponse) Proof {
	return Proof{
		ID:             p.ID.Bytes(),
		ParcelID:       p.ParcelID.Bytes(),
		CourierID:      p.CourierID.Bytes(),
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		AccuracyMeters: p.AccuracyMeters,
		HasEvidence:    len(p.Evidence) > 0,
		Evidence:       p.Evidence,
		ReceiverName:   p.ReceiverName,
		Outcome:        p.Outcome.Code(),
		FailureReason:  p.FailureReason,
		Comments:       p.Comments,
		RecordedAt:     p.RecordedAt,
	}
}
