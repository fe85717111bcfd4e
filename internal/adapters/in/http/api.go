package http

import (
	"fmt"
	"net/http"
	"time"

	"tracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Wire types of openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type LoginRequest struct {
	Handle   string  `json:"handle"`
	Password string  `json:"password"`
	Device   *string `json:"device,omitempty"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message"`
	Account *Account `json:"account,omitempty"`
}

type Account struct {
	ID         uuid.UUID  `json:"id"`
	Handle     string     `json:"handle"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

type Destination struct {
	Street         string   `json:"street"`
	ExteriorNumber string   `json:"exterior_number,omitempty"`
	Neighborhood   string   `json:"neighborhood,omitempty"`
	City           string   `json:"city,omitempty"`
	PostalCode     string   `json:"postal_code,omitempty"`
	References     string   `json:"references,omitempty"`
	FullAddress    string   `json:"full_address"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

type Parcel struct {
	ID             uuid.UUID   `json:"id"`
	TrackingNumber string      `json:"tracking_number"`
	CourierID      *uuid.UUID  `json:"courier_id,omitempty"`
	RecipientName  string      `json:"recipient_name"`
	RecipientPhone string      `json:"recipient_phone,omitempty"`
	Destination    Destination `json:"destination"`
	Status         string      `json:"status"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	AssignedAt     *time.Time  `json:"assigned_at,omitempty"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type ParcelList struct {
	Total   int      `json:"total"`
	Parcels []Parcel `json:"parcels"`
}

type StartRouteRequest struct {
	Note *string `json:"note,omitempty"`
}

type ParcelResult struct {
	Message string `json:"message"`
	Parcel  Parcel `json:"parcel"`
}

// ConfirmDeliveryRequest carries the evidence base64-encoded; encoding/json
// decodes it into Evidence.
type ConfirmDeliveryRequest struct {
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	Evidence       []byte   `json:"evidence,omitempty"`
	ReceiverName   *string  `json:"receiver_name,omitempty"`
	Outcome        *string  `json:"outcome,omitempty"`
	FailureReason  *string  `json:"failure_reason,omitempty"`
	Comments       *string  `json:"comments,omitempty"`
}

type Proof struct {
	ID             uuid.UUID `json:"id"`
	ParcelID       uuid.UUID `json:"parcel_id"`
	CourierID      uuid.UUID `json:"courier_id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters *float64  `json:"accuracy_meters,omitempty"`
	HasEvidence    bool      `json:"has_evidence"`
	Evidence       []byte    `json:"evidence,omitempty"`
	ReceiverName   string    `json:"receiver_name,omitempty"`
	Outcome        string    `json:"outcome"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	Comments       string    `json:"comments,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type ConfirmDeliveryResponse struct {
	Message string `json:"message"`
	Parcel  Parcel `json:"parcel"`
	Proof   Proof  `json:"proof"`
}

type ListParcelsParams struct {
	Status *string
}

type ParcelHistoryParams struct {
	Limit *int
}

// ServerInterface has one method per operationId of openapi.yaml.
type ServerInterface interface {
	Login(ctx echo.Context) error
	Logout(ctx echo.Context) error
	WhoAmI(ctx echo.Context) error
	ValidateToken(ctx echo.Context) error
	ListParcels(ctx echo.Context, params ListParcelsParams) error
	ListPendingParcels(ctx echo.Context) error
	ListEnRouteParcels(ctx echo.Context) error
	ParcelHistory(ctx echo.Context, params ParcelHistoryParams) error
	GetParcel(ctx echo.Context, id kernel.UUID) error
	StartRoute(ctx echo.Context, id kernel.UUID) error
	ConfirmDelivery(ctx echo.Context, id kernel.UUID) error
	GetProof(ctx echo.Context, id kernel.UUID) error
}

// ServerInterfaceWrapper binds path and query parameters before calling Handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error  { return w.Handler.Login(ctx) }
func (w *ServerInterfaceWrapper) Logout(ctx echo.Context) error { return w.Handler.Logout(ctx) }
func (w *ServerInterfaceWrapper) WhoAmI(ctx echo.Context) error { return w.Handler.WhoAmI(ctx) }
func (w *ServerInterfaceWrapper) ValidateToken(ctx echo.Context) error {
	return w.Handler.ValidateToken(ctx)
}

func (w *ServerInterfaceWrapper) ListPendingParcels(ctx echo.Context) error {
	return w.Handler.ListPendingParcels(ctx)
}

func (w *ServerInterfaceWrapper) ListEnRouteParcels(ctx echo.Context) error {
	return w.Handler.ListEnRouteParcels(ctx)
}

func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	var params ListParcelsParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return w.Handler.ListParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) ParcelHistory(ctx echo.Context) error {
	var params ParcelHistoryParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return w.Handler.ParcelHistory(ctx, params)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	id, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) StartRoute(ctx echo.Context) error {
	id, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.StartRoute(ctx, id)
}

func (w *ServerInterfaceWrapper) ConfirmDelivery(ctx echo.Context) error {
	id, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) GetProof(ctx echo.Context) error {
	id, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetProof(ctx, id)
}

func bindParcelID(ctx echo.Context) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	id, err := kernel.UUIDFromGoogle(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: nil UUID")
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL. login
// receives loginMiddleware in addition to the router's own.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string, loginMiddleware ...echo.MiddlewareFunc) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/auth/login", w.Login, loginMiddleware...)
	router.POST(baseURL+"/auth/logout", w.Logout)
	router.GET(baseURL+"/auth/me", w.WhoAmI)
	router.POST(baseURL+"/auth/validate-token", w.ValidateToken)
	router.GET(baseURL+"/parcels", w.ListParcels)
	router.GET(baseURL+"/parcels/pending", w.ListPendingParcels)
	router.GET(baseURL+"/parcels/en-route", w.ListEnRouteParcels)
	router.GET(baseURL+"/parcels/history", w.ParcelHistory)
	router.GET(baseURL+"/parcels/:id", w.GetParcel)
	router.POST(baseURL+"/parcels/:id/start-route", w.StartRoute)
	router.POST(baseURL+"/parcels/:id/confirm-delivery", w.ConfirmDelivery)
	router.GET(baseURL+"/parcels/:id/proof", w.GetProof)
}
