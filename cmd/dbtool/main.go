// Command dbtool migrates the tracking schema and seeds couriers and parcels.
//
//	dbtool migrate up|down|version
//	dbtool create-account -handle h -password p -name "Full Name" [-email e] [-phone p]
//	dbtool create-parcel -tracking T -recipient R -street S [-courier handle] ...
//	dbtool seed -file data/seed.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"tracking/cmd"
	"tracking/internal/adapters/out/credentials"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/migrations"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/pkg/clock"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	dsn := config.Database().URL()
	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		err = runMigrate(dsn, os.Args[2:])
	case "create-account":
		err = withTools(config, func(t tools) error { return createAccount(ctx, t, os.Args[2:]) })
	case "create-parcel":
		err = withTools(config, func(t tools) error { return createParcel(ctx, t, os.Args[2:]) })
	case "seed":
		err = withTools(config, func(t tools) error { return seed(ctx, t, os.Args[2:]) })
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool migrate up|down|version | create-account | create-parcel | seed")
	os.Exit(2)
}

func runMigrate(dsn string, args []string) error {
	if len(args) != 1 {
		usage()
	}
	switch args[0] {
	case "up":
		if err := migrations.Up(dsn); err != nil {
			return err
		}
		log.Println("Schema is up to date.")
	case "down":
		if err := migrations.Down(dsn); err != nil {
			return err
		}
		log.Println("All migrations reverted.")
	case "version":
		v, dirty, err := migrations.Version(dsn)
		if err != nil {
			return err
		}
		log.Printf("Schema version %d (dirty: %t)", v, dirty)
	default:
		usage()
	}
	return nil
}

// tools are the handlers the seeding subcommands run.
type tools struct {
	createAccount commands.CreateAccountCommandHandler
	createParcel  commands.CreateParcelCommandHandler
}

func withTools(config cmd.Config, fn func(tools) error) error {
	dsn := config.Database().URL()
	if err := migrations.Up(dsn); err != nil {
		return err
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	uowFactory := postgres.NewGormUnitOfWorkFactory(db)
	clk := clock.System{}

	return fn(tools{
		createAccount: commands.NewCreateAccountCommandHandler(
			cmd.FuncAccountUoWFactory(func() commands.AccountUoW { return uowFactory.Create() }),
			credentials.NewBcryptVerifier(config.BcryptCost),
			clk,
		),
		createParcel: commands.NewCreateParcelCommandHandler(
			cmd.FuncParcelUoWFactory(func() commands.ParcelUoW { return uowFactory.Create() }),
			clk,
		),
	})
}

func createAccount(ctx context.Context, t tools, args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)
	var a AccountSeed
	fs.StringVar(&a.Handle, "handle", "", "login handle")
	fs.StringVar(&a.Password, "password", "", "initial password")
	fs.StringVar(&a.FullName, "name", "", "full name")
	fs.StringVar(&a.Email, "email", "", "email address")
	fs.StringVar(&a.Phone, "phone", "", "phone number")
	_ = fs.Parse(args)

	return a.apply(ctx, t.createAccount)
}

func createParcel(ctx context.Context, t tools, args []string) error {
	fs := flag.NewFlagSet("create-parcel", flag.ExitOnError)
	var p ParcelSeed
	var lat, lng float64
	fs.StringVar(&p.TrackingNumber, "tracking", "", "tracking number")
	fs.StringVar(&p.RecipientName, "recipient", "", "recipient name")
	fs.StringVar(&p.RecipientPhone, "recipient-phone", "", "recipient phone")
	fs.StringVar(&p.Destination.Street, "street", "", "street")
	fs.StringVar(&p.Destination.ExteriorNumber, "number", "", "exterior number")
	fs.StringVar(&p.Destination.Neighborhood, "neighborhood", "", "neighborhood")
	fs.StringVar(&p.Destination.City, "city", "", "city")
	fs.StringVar(&p.Destination.PostalCode, "postal-code", "", "postal code")
	fs.StringVar(&p.Destination.References, "references", "", "delivery references")
	fs.Float64Var(&lat, "lat", 0, "destination latitude")
	fs.Float64Var(&lng, "lng", 0, "destination longitude")
	fs.StringVar(&p.Notes, "notes", "", "notes")
	fs.StringVar(&p.CourierHandle, "courier", "", "handle of the courier to assign")
	_ = fs.Parse(args)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			p.Destination.Latitude = &lat
		case "lng":
			p.Destination.Longitude = &lng
		}
	})

	return p.apply(ctx, t.createParcel)
}

func seed(ctx context.Context, t tools, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	path := fs.String("file", "data/seed.json", "seed file")
	_ = fs.Parse(args)

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := ReadSeed(f)
	if err != nil {
		return err
	}

	log.Println("Seeding database...")
	created, err := s.Apply(ctx, t.createAccount, t.createParcel)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete: %d accounts, %d parcels.", created.Accounts, created.Parcels)
	return nil
}
