package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/bytes"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiBaseURL = "/api"

// DefaultBodyLimit caps API request bodies; base64 evidence dominates the size.
const DefaultBodyLimit = "4M"

// RouterConfig holds what NewEcho needs beyond the API handlers.
type RouterConfig struct {
	AllowedOrigins     []string
	LoginRatePerMinute int
	BodyLimit          string
	Recorder           HTTPRecorder
	MetricsHandler     http.Handler
	Logger             *slog.Logger
}

// NewEcho builds the HTTP application: operational endpoints at the root and
// the validated API under /api.
func NewEcho(si ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = DefaultBodyLimit
	}
	if _, err := bytes.Parse(bodyLimit); err != nil {
		return nil, fmt.Errorf("invalid body limit %q: %w", bodyLimit, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.Recorder != nil {
		e.Use(Metrics(cfg.Recorder))
	}
	e.Use(RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", SpecYAML())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	var loginLimit []echo.MiddlewareFunc
	if cfg.LoginRatePerMinute > 0 {
		loginLimit = append(loginLimit, LoginRateLimiter(cfg.LoginRatePerMinute))
	}

	api := e.Group(apiBaseURL, middleware.BodyLimit(bodyLimit), validator)
	RegisterHandlersWithBaseURL(api, si, "", loginLimit...)

	return e, nil
}

// jsonErrorHandler renders errors that escape the handlers, such as routing and
// parameter binding failures, in the same shape as handler errors.
func jsonErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := http.StatusInternalServerError, msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code, message = he.Code, fmt.Sprint(he.Message)
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", slog.Any("error", err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}
