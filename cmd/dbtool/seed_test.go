package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `{
  "accounts": [
    {"handle": "courier1", "password": "secret123", "full_name": "Ana López"},
    {"handle": "courier2", "password": "secret456", "full_name": "Luis Pérez", "phone": "+52 55 0000 0000"}
  ],
  "parcels": [
    {
      "tracking_number": "PQX-0001",
      "recipient_name": "María",
      "destination": {"street": "Av. Juárez", "city": "CDMX", "latitude": 19.43, "longitude": -99.13},
      "courier_handle": "courier1"
    }
  ]
}`

type accountStub struct {
	existing map[string]bool
	created  []string
}

func (s *accountStub) Handle(_ context.Context, cmd commands.CreateAccountCommand) (*account.Account, error) {
	if s.existing[cmd.Handle()] {
		return nil, errs.NewObjectAlreadyExistsError("handle", cmd.Handle())
	}
	s.created = append(s.created, cmd.Handle())
	return account.RestoreAccount(kernel.NewUUID(), cmd.Handle(), "digest", cmd.FullName(), "", "", true, nil, time.Now())
}

type parcelStub struct {
	couriers []string
}

func (s *parcelStub) Handle(_ context.Context, cmd commands.CreateParcelCommand) (*parcel.Parcel, error) {
	s.couriers = append(s.couriers, cmd.CourierHandle())
	return parcel.NewParcel(kernel.NewUUID(), cmd.TrackingNumber(), cmd.RecipientName(), cmd.RecipientPhone(),
		cmd.Destination(), cmd.Notes(), time.Now())
}

func TestReadSeed(t *testing.T) {
	s, err := ReadSeed(strings.NewReader(seedJSON))

	require.NoError(t, err)
	require.Len(t, s.Accounts, 2)
	require.Len(t, s.Parcels, 1)
	assert.Equal(t, "Luis Pérez", s.Accounts[1].FullName)
	require.NotNil(t, s.Parcels[0].Destination.Latitude)
	assert.InDelta(t, 19.43, *s.Parcels[0].Destination.Latitude, 1e-9)
}

func TestReadSeed_UnknownField(t *testing.T) {
	_, err := ReadSeed(strings.NewReader(`{"accounts": [{"handle": "x", "role": "admin"}]}`))

	assert.Error(t, err)
}

func TestSeedApply_SkipsExisting(t *testing.T) {
	s, err := ReadSeed(strings.NewReader(seedJSON))
	require.NoError(t, err)

	accounts := &accountStub{existing: map[string]bool{"courier1": true}}
	parcels := &parcelStub{}

	res, err := s.Apply(context.Background(), accounts, parcels)

	require.NoError(t, err)
	assert.Equal(t, SeedResult{Accounts: 1, Parcels: 1}, res)
	assert.Equal(t, []string{"courier2"}, accounts.created)
	assert.Equal(t, []string{"courier1"}, parcels.couriers)
}

func TestSeedApply_StopsOnInvalidEntry(t *testing.T) {
	s := Seed{Accounts: []AccountSeed{{Handle: "courier3", Password: "x", FullName: "Short Secret"}}}

	_, err := s.Apply(context.Background(), &accountStub{}, &parcelStub{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "courier3")
}
