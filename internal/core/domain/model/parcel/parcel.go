package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	TrackingNumberMaxLength = 25
	RecipientNameMaxLength  = 120
	RecipientPhoneMaxLength = 25
)

var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Parcel is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - trackingNumber is unique (enforced by storage) and never changes
//   - status only moves along the graph documented on Status
//   - only the assigned courier may start the route or finish the parcel
//   - completedAt is set exactly when status becomes terminal
type Parcel struct {
	id             kernel.UUID
	trackingNumber string
	courierID      *kernel.UUID
	recipientName  string
	recipientPhone string
	destination    Destination
	status         Status
	notes          string
	createdAt      time.Time
	assignedAt     *time.Time
	completedAt    *time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewParcel registers a parcel in Assigned status with no courier yet.
func NewParcel(
	id kernel.UUID,
	trackingNumber string,
	recipientName string,
	recipientPhone string,
	destination Destination,
	notes string,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:    Assigned,
		notes:     strings.TrimSpace(notes),
		createdAt: createdAt.UTC(),
		updatedAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setRecipient(recipientName, recipientPhone),
		p.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a Parcel from persisted state.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber string,
	recipientName string,
	recipientPhone string,
	destination Destination,
	courierID *kernel.UUID,
	status Status,
	notes string,
	createdAt time.Time,
	assignedAt *time.Time,
	completedAt *time.Time,
	updatedAt time.Time,
) (*Parcel, error) {
	p, err := NewParcel(id, trackingNumber, recipientName, recipientPhone, destination, notes, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status.IsTerminal() != (completedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedAt",
			fmt.Errorf("status %s with completedAt set=%t", status, completedAt != nil))
	}

	p.status = status
	p.courierID = copyUUID(courierID)
	p.assignedAt = copyTime(assignedAt)
	p.completedAt = copyTime(completedAt)
	p.updatedAt = updatedAt.UTC()
	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID          { return p.id }
func (p *Parcel) TrackingNumber() string   { return p.trackingNumber }
func (p *Parcel) CourierID() *kernel.UUID  { return p.courierID }
func (p *Parcel) RecipientName() string    { return p.recipientName }
func (p *Parcel) RecipientPhone() string   { return p.recipientPhone }
func (p *Parcel) Destination() Destination { return p.destination }
func (p *Parcel) Status() Status           { return p.status }
func (p *Parcel) Notes() string            { return p.notes }
func (p *Parcel) CreatedAt() time.Time     { return p.createdAt }
func (p *Parcel) AssignedAt() *time.Time   { return p.assignedAt }
func (p *Parcel) CompletedAt() *time.Time  { return p.completedAt }
func (p *Parcel) UpdatedAt() time.Time     { return p.updatedAt }

// IsOwnedBy reports whether courierID is the assigned courier.
func (p *Parcel) IsOwnedBy(courierID kernel.UUID) bool {
	return p.courierID != nil && p.courierID.IsEqual(courierID)
}

// CheckOwner returns a NotOwner StateError unless courierID holds the parcel.
func (p *Parcel) CheckOwner(courierID kernel.UUID) error {
	if !p.IsOwnedBy(courierID) {
		return NewNotOwnerError(p.id.String())
	}
	return nil
}

// AssignTo hands the parcel to a courier. Reassignment is allowed until the
// route starts.
func (p *Parcel) AssignTo(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if p.status != Assigned {
		e := newWrongStateError("assign courier", p.status)
		e.ParcelID = p.id.String()
		return e
	}
	id := courierID
	t := at.UTC()
	p.courierID = &id
	p.assignedAt = &t
	p.updatedAt = t
	return nil
}

// StartRoute moves the parcel to EnRoute on behalf of its courier.
// A non-empty note replaces the stored notes.
func (p *Parcel) StartRoute(courierID kernel.UUID, note string, at time.Time) error {
	if err := p.CheckOwner(courierID); err != nil {
		return err
	}

	next, err := p.status.StartRoute()
	if err != nil {
		return p.withID(err)
	}

	p.status = next
	if note = strings.TrimSpace(note); note != "" {
		p.notes = note
	}
	p.updatedAt = at.UTC()
	return nil
}

// Finish closes the parcel: Completed when delivered, Failed otherwise.
func (p *Parcel) Finish(courierID kernel.UUID, delivered bool, at time.Time) error {
	if err := p.CheckOwner(courierID); err != nil {
		return err
	}

	next, err := p.status.Finish(delivered)
	if err != nil {
		return p.withID(err)
	}

	t := at.UTC()
	p.status = next
	p.completedAt = &t
	p.updatedAt = t
	return nil
}

func (p *Parcel) withID(err error) error {
	var se *StateError
	if errors.As(err, &se) {
		se.ParcelID = p.id.String()
	}
	return err
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(n string) error {
	n = strings.TrimSpace(n)
	if n == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if l := utf8.RuneCountInString(n); l > TrackingNumberMaxLength {
		return errs.NewValueIsOutOfRangeError("trackingNumber length", l, 1, TrackingNumberMaxLength)
	}
	p.trackingNumber = n
	return nil
}

func (p *Parcel) setRecipient(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	if l := utf8.RuneCountInString(name); l > RecipientNameMaxLength {
		return errs.NewValueIsOutOfRangeError("recipientName length", l, 1, RecipientNameMaxLength)
	}
	if l := utf8.RuneCountInString(phone); l > RecipientPhoneMaxLength {
		return errs.NewValueIsOutOfRangeError("recipientPhone length", l, 0, RecipientPhoneMaxLength)
	}
	p.recipientName = name
	p.recipientPhone = phone
	return nil
}

func (p *Parcel) setDestination(d Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	p.destination = d
	return nil
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}
