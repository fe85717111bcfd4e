package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/services"
	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgAuthenticationFailed = "authentication failed"
	msgForbidden            = "forbidden"
	msgNotFound             = "not found"
	msgInternal             = "internal server error"
)

// writeError translates err into a status code and a client-safe message.
// Auth sub-kinds and collaborator failures stay in the log.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status, message := s.classify(ctx, err)
	if status == http.StatusUnauthorized {
		ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="tracking"`)
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func (s *Server) classify(ctx echo.Context, err error) (int, string) {
	req := ctx.Request()
	log := s.logger.With(
		slog.String("method", req.Method),
		slog.String("path", ctx.Path()),
		slog.String("request_id", ctx.Response().Header().Get(echo.HeaderXRequestID)),
	)

	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		log.WarnContext(req.Context(), "request rejected",
			slog.String("failure", authErr.Failure.String()),
			slog.Any("error", err))
		if authErr.IsForbidden() {
			return http.StatusForbidden, msgForbidden
		}
		return http.StatusUnauthorized, msgAuthenticationFailed
	}

	var stateErr *parcel.StateError
	if errors.As(err, &stateErr) {
		switch stateErr.Violation {
		case parcel.NotFound, parcel.NotOwner:
			return http.StatusNotFound, stateErr.Reason()
		case parcel.WrongState, parcel.AlreadyConfirmed:
			return http.StatusBadRequest, stateErr.Reason()
		}
	}

	switch {
	case errors.Is(err, services.ErrProofNotFound):
		return http.StatusNotFound, "proof of delivery not found"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, "already exists"
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	log.ErrorContext(req.Context(), "request failed", slog.Any("error", err))
	return http.StatusInternalServerError, msgInternal
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
