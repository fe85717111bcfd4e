package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"
)

// Seed is the JSON layout read by "dbtool seed".
type Seed struct {
	Accounts []AccountSeed `json:"accounts"`
	Parcels  []ParcelSeed  `json:"parcels"`
}

type AccountSeed struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type DestinationSeed struct {
	Street         string   `json:"street"`
	ExteriorNumber string   `json:"exterior_number"`
	Neighborhood   string   `json:"neighborhood"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postal_code"`
	References     string   `json:"references"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

type ParcelSeed struct {
	TrackingNumber string          `json:"tracking_number"`
	RecipientName  string          `json:"recipient_name"`
	RecipientPhone string          `json:"recipient_phone"`
	Destination    DestinationSeed `json:"destination"`
	Notes          string          `json:"notes"`
	CourierHandle  string          `json:"courier_handle"`
}

type SeedResult struct {
	Accounts int
	Parcels  int
}

// ReadSeed decodes a seed file, rejecting unknown fields.
func ReadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

// AccountHandler and ParcelHandler are the seeding use cases.
type (
	AccountHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAccountCommand) (*account.Account, error)
	}

	ParcelHandler interface {
		Handle(ctx context.Context, cmd commands.CreateParcelCommand) (*parcel.Parcel, error)
	}
)

// Apply creates accounts first, then parcels, so parcels can name couriers
// from the same file. Entries that already exist are skipped, which makes a
// seed file safe to apply twice.
func (s Seed) Apply(ctx context.Context, accounts AccountHandler, parcels ParcelHandler) (SeedResult, error) {
	var res SeedResult
	for _, a := range s.Accounts {
		err := a.apply(ctx, accounts)
		switch {
		case errors.Is(err, errs.ErrObjectAlreadyExists):
			log.Printf("Account %q already exists, skipped.", a.Handle)
		case err != nil:
			return res, fmt.Errorf("account %q: %w", a.Handle, err)
		default:
			res.Accounts++
		}
	}
	for _, p := range s.Parcels {
		err := p.apply(ctx, parcels)
		switch {
		case errors.Is(err, errs.ErrObjectAlreadyExists):
			log.Printf("Parcel %q already exists, skipped.", p.TrackingNumber)
		case err != nil:
			return res, fmt.Errorf("parcel %q: %w", p.TrackingNumber, err)
		default:
			res.Parcels++
		}
	}
	return res, nil
}

func (a AccountSeed) apply(ctx context.Context, h AccountHandler) error {
	cmd, err := commands.NewCreateAccountCommand(a.Handle, a.Password, a.FullName, a.Email, a.Phone)
	if err != nil {
		return err
	}
	created, err := h.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	log.Printf("Created account %s (%s).", created.Handle(), created.ID())
	return nil
}

func (p ParcelSeed) apply(ctx context.Context, h ParcelHandler) error {
	d := p.Destination
	cmd, err := commands.NewCreateParcelCommand(p.TrackingNumber, p.RecipientName, p.RecipientPhone,
		commands.DestinationInput{
			Street:         d.Street,
			ExteriorNumber: d.ExteriorNumber,
			Neighborhood:   d.Neighborhood,
			City:           d.City,
			PostalCode:     d.PostalCode,
			References:     d.References,
			Latitude:       d.Latitude,
			Longitude:      d.Longitude,
		}, p.Notes, p.CourierHandle)
	if err != nil {
		return err
	}
	created, err := h.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	log.Printf("Created parcel %s (%s), status %s.", created.TrackingNumber(), created.ID(), created.Status().Code())
	return nil
}
