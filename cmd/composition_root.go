package cmd

import (
	"fmt"
	"time"

	"tracking/internal/adapters/out/credentials"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/tokens"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot owns the shared adapters and builds every use case handler.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	verifier   credentials.BcryptVerifier
	codec      *tokens.JWTCodec
	clock      ports.Clock
	metrics    ports.Metrics
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, metrics ports.Metrics) (CompositionRoot, error) {
	clk := clock.System{}
	codec, err := tokens.NewJWTCodec(config.Tokens(), clk)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("token codec: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		verifier:   credentials.NewBcryptVerifier(config.BcryptCost),
		codec:      codec,
		clock:      clk,
		metrics:    metrics,
	}, nil
}

func (c *CompositionRoot) tokenTTL() time.Duration {
	return c.codec.DefaultTTL()
}

func (c *CompositionRoot) authUoWFactory() commands.AuthUoWFactory {
	return FuncAuthUoWFactory(func() commands.AuthUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) repositoriesFactory() queries.RepositoriesFactory {
	return FuncRepositoriesFactory(func() queries.Repositories { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.authUoWFactory(), c.verifier, c.codec, c.clock, c.metrics, c.tokenTTL())
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.sessionUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSweepExpiredSessionsCommandHandler() commands.SweepExpiredSessionsCommandHandler {
	return commands.NewSweepExpiredSessionsCommandHandler(c.sessionUoWFactory(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.deliveryUoWFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.deliveryUoWFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateCreateAccountCommandHandler() commands.CreateAccountCommandHandler {
	f := FuncAccountUoWFactory(func() commands.AccountUoW { return c.uowFactory.Create() })
	return commands.NewCreateAccountCommandHandler(f, c.verifier, c.clock)
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	f := FuncParcelUoWFactory(func() commands.ParcelUoW { return c.uowFactory.Create() })
	return commands.NewCreateParcelCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateWhoAmIQueryHandler() queries.WhoAmIQueryHandler {
	return queries.NewWhoAmIQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateValidateTokenQueryHandler() queries.ValidateTokenQueryHandler {
	return queries.NewValidateTokenQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateParcelHistoryQueryHandler() queries.ParcelHistoryQueryHandler {
	return queries.NewParcelHistoryQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics, c.config.HistoryLimit())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateGetProofQueryHandler() queries.GetProofQueryHandler {
	return queries.NewGetProofQueryHandler(c.repositoriesFactory(), c.codec, c.clock, c.metrics)
}

type FuncAuthUoWFactory func() commands.AuthUoW

func (f FuncAuthUoWFactory) Create() commands.AuthUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncRepositoriesFactory func() queries.Repositories

func (f FuncRepositoriesFactory) Create() queries.Repositories {
	return f()
}
