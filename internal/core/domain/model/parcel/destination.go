package parcel

import (
	"errors"
	"strings"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrDestinationIsNotConstructed = errs.NewValueIsRequiredError("destination must be created via NewDestination")

// Destination is the delivery address of a parcel.
type Destination struct { //nolint:recvcheck //using for validation
	street         string
	exteriorNumber string
	neighborhood   string
	city           string
	postalCode     string
	references     string
	point          *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewDestination validates field lengths. Only street is required; point may be nil.
func NewDestination(
	street, exteriorNumber, neighborhood, city, postalCode, references string,
	point *kernel.GeoPoint,
) (Destination, error) {
	d := Destination{
		references: strings.TrimSpace(references),
		guard:      guard.NewConstructorGuard(),
	}

	street = strings.TrimSpace(street)
	var streetErr error
	if street == "" {
		streetErr = errs.NewValueIsRequiredError("street")
	}

	if err := errors.Join(
		streetErr,
		maxLen("street", street, 220, &d.street),
		maxLen("exteriorNumber", exteriorNumber, 25, &d.exteriorNumber),
		maxLen("neighborhood", neighborhood, 120, &d.neighborhood),
		maxLen("city", city, 120, &d.city),
		maxLen("postalCode", postalCode, 12, &d.postalCode),
		validPoint(point),
	); err != nil {
		return Destination{}, err
	}
	if point != nil {
		p := *point
		d.point = &p
	}

	return d, nil
}

func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

func (d Destination) Street() string          { return d.street }
func (d Destination) ExteriorNumber() string  { return d.exteriorNumber }
func (d Destination) Neighborhood() string    { return d.neighborhood }
func (d Destination) City() string            { return d.city }
func (d Destination) PostalCode() string      { return d.postalCode }
func (d Destination) References() string      { return d.references }
func (d Destination) Point() *kernel.GeoPoint { return d.point }

// FullAddress formats the address as "Street #12, Neighborhood, City, CP 00000",
// skipping empty parts.
func (d Destination) FullAddress() string {
	var b strings.Builder
	b.WriteString(d.street)
	if d.exteriorNumber != "" {
		b.WriteString(" #")
		b.WriteString(d.exteriorNumber)
	}
	for _, part := range []string{d.neighborhood, d.city} {
		if part != "" {
			b.WriteString(", ")
			b.WriteString(part)
		}
	}
	if d.postalCode != "" {
		b.WriteString(", CP ")
		b.WriteString(d.postalCode)
	}
	return b.String()
}

func maxLen(param, value string, limit int, dst *string) error {
	value = strings.TrimSpace(value)
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 0, limit)
	}
	*dst = value
	return nil
}

func validPoint(p *kernel.GeoPoint) error {
	if p == nil {
		return nil
	}
	return p.Validate()
}
