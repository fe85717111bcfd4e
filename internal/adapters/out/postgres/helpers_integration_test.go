package postgres_test

import (
	"context"
	"fmt"
	"time"

	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/migrations"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

// dbSuite starts one migrated PostgreSQL container per suite.
type dbSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	seq       int
}

func (s *dbSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.dsn = dsn

	s.Require().NoError(migrations.Up(dsn))

	db, err := postgres_adapter.Open(dsn)
	s.Require().NoError(err)
	s.db = db
}

func (s *dbSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE proofs_of_delivery, parcels, sessions, accounts").Error)
}

func (s *dbSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *dbSuite) newAccount() *account.Account {
	s.seq++
	a, err := account.NewAccount(kernel.NewUUID(), fmt.Sprintf("courier%03d", s.seq),
		"$2a$04$abcdefghijklmnopqrstuuAbCdEfGhIjKlMnOpQrStUvWxYz01234", fmt.Sprintf("Courier %d", s.seq),
		"", "", baseTime)
	s.Require().NoError(err)
	return a
}

func (s *dbSuite) newParcel(courierID *kernel.UUID) *parcel.Parcel {
	s.seq++
	pt, err := kernel.NewGeoPoint(19.4326, -99.1332)
	s.Require().NoError(err)
	dest, err := parcel.NewDestination("Av. Insurgentes Sur", "1602", "Crédito Constructor", "CDMX", "03940", "", &pt)
	s.Require().NoError(err)
	p, err := parcel.NewParcel(kernel.NewUUID(), fmt.Sprintf("PQX-%05d", s.seq), "Ana López", "5512345678",
		dest, "", baseTime.Add(time.Duration(s.seq)*time.Minute))
	s.Require().NoError(err)
	if courierID != nil {
		s.Require().NoError(p.AssignTo(*courierID, p.CreatedAt().Add(time.Second)))
	}
	return p
}
