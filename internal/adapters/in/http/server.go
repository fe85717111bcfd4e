package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Handler is satisfied by every command and query handler of the application layer.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	Login      Handler[commands.LoginCommand, commands.LoginResult]
	Logout     Handler[commands.LogoutCommand, bool]
	StartRoute Handler[commands.StartRouteCommand, *parcel.Parcel]
	Confirm    Handler[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult]

	WhoAmI        Handler[queries.WhoAmIQuery, queries.AccountResponse]
	ValidateToken Handler[queries.ValidateTokenQuery, queries.ValidateTokenQueryResponse]
	ListParcels   Handler[queries.ListParcelsQuery, queries.ParcelListResponse]
	History       Handler[queries.ParcelHistoryQuery, queries.ParcelListResponse]
	GetParcel     Handler[queries.GetParcelQuery, queries.ParcelResponse]
	GetProof      Handler[queries.GetProofQuery, queries.ProofResponse]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h         Handlers
	sanitizer *TextSanitizer
	logger    *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(h Handlers, sanitizer *TextSanitizer, logger *slog.Logger) *Server {
	if sanitizer == nil {
		sanitizer = NewTextSanitizer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, sanitizer: sanitizer, logger: logger.With(slog.String("component", "http"))}
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	device := ""
	if body.Device != nil {
		device = s.sanitizer.Clean(*body.Device)
	}
	cmd, err := commands.NewLoginCommand(body.Handle, body.Password, device, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.h.Login.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Message:   "login successful",
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresAt: res.ExpiresAt,
		Account:   toAccount(queries.NewAccountResponse(res.Account)),
	})
}

// Logout handles POST /api/auth/logout. Closing an unknown or already closed
// session still succeeds.
func (s *Server) Logout(ctx echo.Context) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewLogoutCommand(token)
	if err != nil {
		return s.writeError(ctx, err)
	}

	closed, err := s.h.Logout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	msg := "logout successful"
	if !closed {
		msg = "no active session"
	}
	return ctx.JSON(http.StatusOK, Message{Message: msg, Success: true})
}

// WhoAmI handles GET /api/auth/me.
func (s *Server) WhoAmI(ctx echo.Context) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	q, err := queries.NewWhoAmIQuery(token)
	if err != nil {
		return s.writeError(ctx, err)
	}

	a, err := s.h.WhoAmI.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAccount(a))
}

// ValidateToken handles POST /api/auth/validate-token. An invalid token is a
// normal answer, not an error.
func (s *Server) ValidateToken(ctx echo.Context) error {
	var body ValidateTokenRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	res, err := s.h.ValidateToken.Handle(ctx.Request().Context(), queries.NewValidateTokenQuery(body.Token))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if res.Failure != nil {
		s.logger.WarnContext(ctx.Request().Context(), "token rejected",
			slog.String("failure", services.AuthFailureOf(res.Failure).String()),
			slog.String("request_id", ctx.Response().Header().Get(echo.HeaderXRequestID)))
	}

	out := ValidateTokenResponse{Valid: res.Valid, Message: res.Message}
	if res.Account != nil {
		a := toAccount(*res.Account)
		out.Account = &a
	}
	return ctx.JSON(http.StatusOK, out)
}

// ListParcels handles GET /api/parcels.
func (s *Server) ListParcels(ctx echo.Context, params ListParcelsParams) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	status := ""
	if params.Status != nil {
		status = *params.Status
	}
	q, err := queries.NewListParcelsQuery(token, status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.listParcels(ctx, q)
}

// ListPendingParcels handles GET /api/parcels/pending.
func (s *Server) ListPendingParcels(ctx echo.Context) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	q, err := queries.NewPendingParcelsQuery(token)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.listParcels(ctx, q)
}

// ListEnRouteParcels handles GET /api/parcels/en-route.
func (s *Server) ListEnRouteParcels(ctx echo.Context) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	q, err := queries.NewEnRouteParcelsQuery(token)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.listParcels(ctx, q)
}

func (s *Server) listParcels(ctx echo.Context, q queries.ListParcelsQuery) error {
	list, err := s.h.ListParcels.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParcelList(list))
}

// ParcelHistory handles GET /api/parcels/history.
func (s *Server) ParcelHistory(ctx echo.Context, params ParcelHistoryParams) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	q, err := queries.NewParcelHistoryQuery(token, limit)
	if err != nil {
		return s.writeError(ctx, err)
	}

	list, err := s.h.History.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParcelList(list))
}

// GetParcel handles GET /api/parcels/{id}.
func (s *Server) GetParcel(ctx echo.Context, id kernel.UUID) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	q, err := queries.NewGetParcelQuery(token, id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.GetParcel.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParcel(p))
}

// StartRoute handles POST /api/parcels/{id}/start-route.
func (s *Server) StartRoute(ctx echo.Context, id kernel.UUID) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body StartRouteRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return s.badRequest(ctx, "invalid request body")
		}
	}

	cmd, err := commands.NewStartRouteCommand(token, id, s.sanitizer.cleanPtr(body.Note))
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.StartRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ParcelResult{
		Message: "route started",
		Parcel:  toParcel(queries.NewParcelResponse(p)),
	})
}

// ConfirmDelivery handles POST /api/parcels/{id}/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context, id kernel.UUID) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body ConfirmDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	outcome := ""
	if body.Outcome != nil {
		outcome = *body.Outcome
	}
	cmd, err := commands.NewConfirmDeliveryCommand(token, id, commands.ProofSubmission{
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
		AccuracyMeters: body.AccuracyMeters,
		Evidence:       body.Evidence,
		ReceiverName:   s.sanitizer.cleanPtr(body.ReceiverName),
		Outcome:        outcome,
		FailureReason:  s.sanitizer.cleanPtr(body.FailureReason),
		Comments:       s.sanitizer.cleanPtr(body.Comments),
	})
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.h.Confirm.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ConfirmDeliveryResponse{
		Message: "delivery confirmed",
		Parcel:  toParcel(queries.NewParcelResponse(res.Parcel)),
		Proof:   toProof(queries.NewProofResponse(res.Proof)),
	})
}

// GetProof handles GET /api/parcels/{id}/proof.
func (s *Server) GetProof(ctx echo.Context, id kernel.UUID) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	q, err := queries.NewGetProofQuery(token, id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	p, err := s.h.GetProof.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProof(p))
}

func (s *Server) badRequest(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}

// bearerToken reads the Authorization header. A missing or malformed header
// fails the same way a bad token does.
func bearerToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", services.NewAuthError(services.InvalidToken)
	}
	return strings.TrimSpace(token), nil
}
