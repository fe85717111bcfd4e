package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/credentials"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/tokens"
	"tracking/internal/core/domain/services"
	"tracking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecretKey         string
	JWTAlgorithm         string
	JWTExpirationMinutes int
	JWTIssuer            string
	BcryptCost           int

	HistoryDefaultLimit  int
	SessionSweepSchedule string
	LoginRatePerMinute   int
	BodyLimit            string
	AllowedOrigins       []string
	LogLevel             string
}

// LoadConfig reads the environment, after loading .env when one exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	intVar := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return v
	}

	cfg := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		JWTSecretKey:         os.Getenv("JWT_SECRET_KEY"),
		JWTAlgorithm:         envOr("JWT_ALGORITHM", "HS256"),
		JWTExpirationMinutes: intVar("JWT_EXPIRATION_MINUTES", int(tokens.DefaultTTL/time.Minute)),
		JWTIssuer:            os.Getenv("JWT_ISSUER"),
		BcryptCost:           intVar("BCRYPT_COST", credentials.DefaultCost),

		HistoryDefaultLimit:  intVar("HISTORY_DEFAULT_LIMIT", services.DefaultHistoryLimit),
		SessionSweepSchedule: envOr("SESSION_SWEEP_SCHEDULE", jobs.DefaultSweepSchedule),
		LoginRatePerMinute:   intVar("LOGIN_RATE_PER_MINUTE", 20),
		BodyLimit:            envOr("HTTP_BODY_LIMIT", httpadapter.DefaultBodyLimit),
		AllowedOrigins:       splitList(envOr("ALLOWED_ORIGINS", "*")),
		LogLevel:             envOr("LOG_LEVEL", "info"),
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks what the HTTP service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.JWTExpirationMinutes <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINUTES must be positive"))
	}
	if _, err := bytes.Parse(c.BodyLimit); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_BODY_LIMIT: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) Database() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func (c Config) Tokens() tokens.Config {
	return tokens.Config{
		Secret:    c.JWTSecretKey,
		Algorithm: c.JWTAlgorithm,
		TTL:       time.Duration(c.JWTExpirationMinutes) * time.Minute,
		Issuer:    c.JWTIssuer,
	}
}

// HistoryLimit is HISTORY_DEFAULT_LIMIT capped at the service maximum.
func (c Config) HistoryLimit() int {
	return services.ClampHistoryLimit(c.HistoryDefaultLimit, services.DefaultHistoryLimit)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
