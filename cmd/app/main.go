package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracking/cmd"
	httpadapter "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/metrics"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/migrations"
	"tracking/internal/jobs"
	"tracking/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err = config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger := logger.SetupDefault(os.Stdout, config.LogLevel)

	dsn := config.Database().URL()
	if err = migrations.Up(dsn); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	gormDB, err := postgres.Open(dsn)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	app, err := cmd.NewCompositionRoot(config, gormDB, collector)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateSweepExpiredSessionsCommandHandler(), config.SessionSweepSchedule, appLogger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := newWebServer(&app, config, collector, registry, appLogger)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	e.Logger.SetLevel(echoLogLevel(config.LogLevel))

	startWebServer(e, config.HTTPPort, appLogger)
}

func newWebServer(
	app *cmd.CompositionRoot,
	config cmd.Config,
	collector *metrics.Collector,
	registry *prometheus.Registry,
	appLogger *slog.Logger,
) (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		Login:         app.CreateLoginCommandHandler(),
		Logout:        app.CreateLogoutCommandHandler(),
		StartRoute:    app.CreateStartRouteCommandHandler(),
		Confirm:       app.CreateConfirmDeliveryCommandHandler(),
		WhoAmI:        app.CreateWhoAmIQueryHandler(),
		ValidateToken: app.CreateValidateTokenQueryHandler(),
		ListParcels:   app.CreateListParcelsQueryHandler(),
		History:       app.CreateParcelHistoryQueryHandler(),
		GetParcel:     app.CreateGetParcelQueryHandler(),
		GetProof:      app.CreateGetProofQueryHandler(),
	}, httpadapter.NewTextSanitizer(), appLogger)

	return httpadapter.NewEcho(server, httpadapter.RouterConfig{
		AllowedOrigins:     config.AllowedOrigins,
		LoginRatePerMinute: config.LoginRatePerMinute,
		BodyLimit:          config.BodyLimit,
		Recorder:           collector,
		MetricsHandler:     metrics.Handler(registry),
		Logger:             appLogger,
	})
}

func startWebServer(e *echo.Echo, port string, appLogger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", "error", err)
	}
}

func echoLogLevel(level string) log.Lvl {
	switch logger.ParseLevel(level) {
	case slog.LevelDebug:
		return log.DEBUG
	case slog.LevelWarn:
		return log.WARN
	case slog.LevelError:
		return log.ERROR
	default:
		return log.INFO
	}
}
