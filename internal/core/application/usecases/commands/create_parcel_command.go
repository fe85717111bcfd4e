package commands

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// DestinationInput is the raw delivery address. Latitude and Longitude are
// both set or both nil.
type DestinationInput struct {
	Street         string
	ExteriorNumber string
	Neighborhood   string
	City           string
	PostalCode     string
	References     string
	Latitude       *float64
	Longitude      *float64
}

// CreateParcelCommand registers a parcel and optionally assigns it to a courier
// by handle.
type CreateParcelCommand struct {
	trackingNumber string
	recipientName  string
	recipientPhone string
	destination    parcel.Destination
	notes          string
	courierHandle  string

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(
	trackingNumber string,
	recipientName string,
	recipientPhone string,
	dest DestinationInput,
	notes string,
	courierHandle string,
) (CreateParcelCommand, error) {
	var (
		point    *kernel.GeoPoint
		pointErr error
	)
	switch {
	case dest.Latitude != nil && dest.Longitude != nil:
		pt, err := kernel.NewGeoPoint(*dest.Latitude, *dest.Longitude)
		point, pointErr = &pt, err
	case dest.Latitude != nil || dest.Longitude != nil:
		pointErr = errors.New("destination latitude and longitude must be given together")
	}
	if pointErr != nil {
		return CreateParcelCommand{}, pointErr
	}

	destination, err := parcel.NewDestination(dest.Street, dest.ExteriorNumber, dest.Neighborhood,
		dest.City, dest.PostalCode, dest.References, point)
	if err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		trackingNumber: strings.TrimSpace(trackingNumber),
		recipientName:  strings.TrimSpace(recipientName),
		recipientPhone: strings.TrimSpace(recipientPhone),
		destination:    destination,
		notes:          strings.TrimSpace(notes),
		courierHandle:  strings.TrimSpace(courierHandle),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) TrackingNumber() string          { return c.trackingNumber }
func (c CreateParcelCommand) RecipientName() string           { return c.recipientName }
func (c CreateParcelCommand) RecipientPhone() string          { return c.recipientPhone }
func (c CreateParcelCommand) Destination() parcel.Destination { return c.destination }
func (c CreateParcelCommand) Notes() string                   { return c.notes }
func (c CreateParcelCommand) CourierHandle() string           { return c.courierHandle }
