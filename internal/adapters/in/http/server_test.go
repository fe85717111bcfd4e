package http_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "tracking/internal/adapters/in/http"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/domain/model/proof"
	"tracking/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type handlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f handlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type recorder struct {
	routes []string
}

func (r *recorder) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	r.routes = append(r.routes, method+" "+route)
}

func mustAccount(t *testing.T) *account.Account {
	t.Helper()
	a, err := account.RestoreAccount(kernel.NewUUID(), "courier1", "digest", "Ana López",
		"ana@example.com", "", true, nil, now.Add(-24*time.Hour))
	require.NoError(t, err)
	return a
}

func mustParcel(t *testing.T, courier *account.Account) *parcel.Parcel {
	t.Helper()
	dest, err := parcel.NewDestination("Av. Juárez", "10", "Centro", "CDMX", "06000", "", nil)
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), "PQX-0001", "Luis", "", dest, "", now.Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, p.AssignTo(courier.ID(), now.Add(-time.Hour)))
	return p
}

func newEcho(t *testing.T, h httpadapter.Handlers, cfg httpadapter.RouterConfig) *echo.Echo {
	t.Helper()
	e, err := httpadapter.NewEcho(httpadapter.NewServer(h, nil, nil), cfg)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var out httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLogin_Success(t *testing.T) {
	a := mustAccount(t)
	var got commands.LoginCommand

	e := newEcho(t, httpadapter.Handlers{
		Login: handlerFunc[commands.LoginCommand, commands.LoginResult](
			func(_ context.Context, cmd commands.LoginCommand) (commands.LoginResult, error) {
				got = cmd
				return commands.LoginResult{Token: "tok", ExpiresAt: now.Add(8 * time.Hour), Account: a}, nil
			}),
	}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodPost, "/api/auth/login",
		`{"handle":"courier1","password":"secret123","device":"<b>Pixel</b> 8"}`,
		map[string]string{echo.HeaderXRealIP: "203.0.113.7"})

	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var body httpadapter.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tok", body.Token)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, "Ana López", body.Account.FullName)
	assert.Equal(t, a.ID().Bytes(), body.Account.ID)

	assert.Equal(t, "courier1", got.Handle())
	assert.Equal(t, "Pixel 8", got.Device())
	assert.Equal(t, "203.0.113.7", got.IP())
}

func TestLogin_FailuresAreOpaque(t *testing.T) {
	tests := []struct {
		name    string
		failure services.AuthFailure
		status  int
		message string
	}{
		{"invalid credentials", services.InvalidCredentials, nethttp.StatusUnauthorized, "authentication failed"},
		{"disabled account", services.AccountDisabled, nethttp.StatusForbidden, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(t, httpadapter.Handlers{
				Login: handlerFunc[commands.LoginCommand, commands.LoginResult](
					func(context.Context, commands.LoginCommand) (commands.LoginResult, error) {
						return commands.LoginResult{}, services.NewAuthError(tt.failure)
					}),
			}, httpadapter.RouterConfig{})

			rec := do(e, nethttp.MethodPost, "/api/auth/login", `{"handle":"courier1","password":"secret123"}`, nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
			assert.NotContains(t, rec.Body.String(), tt.failure.String())
		})
	}
}

func TestLogin_RejectedByRequestValidation(t *testing.T) {
	called := false
	e := newEcho(t, httpadapter.Handlers{
		Login: handlerFunc[commands.LoginCommand, commands.LoginResult](
			func(context.Context, commands.LoginCommand) (commands.LoginResult, error) {
				called = true
				return commands.LoginResult{}, nil
			}),
	}, httpadapter.RouterConfig{})

	for _, body := range []string{
		`{"handle":"courier1"}`,
		`{"handle":"courier1","password":"abc"}`,
		`{"handle":"courier1","password":"secret123","role":"admin"}`,
	} {
		rec := do(e, nethttp.MethodPost, "/api/auth/login", body, nil)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code, body)
	}
	assert.False(t, called)
}

func TestLogin_RateLimited(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{
		Login: handlerFunc[commands.LoginCommand, commands.LoginResult](
			func(context.Context, commands.LoginCommand) (commands.LoginResult, error) {
				return commands.LoginResult{}, services.NewAuthError(services.InvalidCredentials)
			}),
	}, httpadapter.RouterConfig{LoginRatePerMinute: 2})

	body := `{"handle":"courier1","password":"secret123"}`
	ip := map[string]string{echo.HeaderXRealIP: "198.51.100.1"}

	assert.Equal(t, nethttp.StatusUnauthorized, do(e, nethttp.MethodPost, "/api/auth/login", body, ip).Code)
	assert.Equal(t, nethttp.StatusUnauthorized, do(e, nethttp.MethodPost, "/api/auth/login", body, ip).Code)

	rec := do(e, nethttp.MethodPost, "/api/auth/login", body, ip)
	assert.Equal(t, nethttp.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	other := do(e, nethttp.MethodPost, "/api/auth/login", body, map[string]string{echo.HeaderXRealIP: "198.51.100.2"})
	assert.Equal(t, nethttp.StatusUnauthorized, other.Code)
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{}, httpadapter.RouterConfig{})
	id := kernel.NewUUID().String()

	for _, r := range []struct{ method, path string }{
		{nethttp.MethodPost, "/api/auth/logout"},
		{nethttp.MethodGet, "/api/auth/me"},
		{nethttp.MethodGet, "/api/parcels"},
		{nethttp.MethodGet, "/api/parcels/pending"},
		{nethttp.MethodGet, "/api/parcels/history"},
		{nethttp.MethodGet, "/api/parcels/" + id},
		{nethttp.MethodGet, "/api/parcels/" + id + "/proof"},
	} {
		rec := do(e, r.method, r.path, "", map[string]string{echo.HeaderAuthorization: "Basic abc"})
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code, r.path)
		assert.Equal(t, "authentication failed", decodeError(t, rec).Message)
		assert.Contains(t, rec.Header().Get(echo.HeaderWWWAuthenticate), "Bearer")
	}
}

func TestLogout(t *testing.T) {
	closed := true
	var token string
	e := newEcho(t, httpadapter.Handlers{
		Logout: handlerFunc[commands.LogoutCommand, bool](
			func(_ context.Context, cmd commands.LogoutCommand) (bool, error) {
				token = cmd.Token()
				return closed, nil
			}),
	}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodPost, "/api/auth/logout", "", bearer("tok-1"))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", token)
	assert.Contains(t, rec.Body.String(), "logout successful")

	closed = false
	rec = do(e, nethttp.MethodPost, "/api/auth/logout", "", bearer("tok-1"))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active session")
}

func TestValidateToken_InvalidIsNotAnError(t *testing.T) {
	respond := func(failure services.AuthFailure) *httptest.ResponseRecorder {
		e := newEcho(t, httpadapter.Handlers{
			ValidateToken: handlerFunc[queries.ValidateTokenQuery, queries.ValidateTokenQueryResponse](
				func(_ context.Context, q queries.ValidateTokenQuery) (queries.ValidateTokenQueryResponse, error) {
					return queries.ValidateTokenQueryResponse{
						Message: queries.MessageTokenInvalid,
						Failure: services.NewAuthError(failure),
					}, nil
				}),
		}, httpadapter.RouterConfig{})
		return do(e, nethttp.MethodPost, "/api/auth/validate-token", `{"token":"nope"}`, nil)
	}

	forged := respond(services.InvalidToken)
	sessionless := respond(services.SessionNotFound)
	disabled := respond(services.AccountDisabled)

	require.Equal(t, nethttp.StatusOK, forged.Code)
	var body httpadapter.ValidateTokenResponse
	require.NoError(t, json.Unmarshal(forged.Body.Bytes(), &body))
	assert.False(t, body.Valid)
	assert.Nil(t, body.Account)

	assert.Equal(t, forged.Code, sessionless.Code)
	assert.Equal(t, forged.Body.String(), sessionless.Body.String())
	assert.Equal(t, forged.Body.String(), disabled.Body.String())
}

func TestGetParcel_OtherCourierLooksMissing(t *testing.T) {
	id := kernel.NewUUID()
	respond := func(err error) *httptest.ResponseRecorder {
		e := newEcho(t, httpadapter.Handlers{
			GetParcel: handlerFunc[queries.GetParcelQuery, queries.ParcelResponse](
				func(context.Context, queries.GetParcelQuery) (queries.ParcelResponse, error) {
					return queries.ParcelResponse{}, err
				}),
		}, httpadapter.RouterConfig{})
		return do(e, nethttp.MethodGet, "/api/parcels/"+id.String(), "", bearer("tok"))
	}

	notOwner := respond(parcel.NewNotOwnerError(id.String()))
	notFound := respond(parcel.NewNotFoundError(id.String()))

	assert.Equal(t, nethttp.StatusNotFound, notOwner.Code)
	assert.Equal(t, notFound.Code, notOwner.Code)
	assert.JSONEq(t, notFound.Body.String(), notOwner.Body.String())
}

func TestGetParcel_InvalidID(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodGet, "/api/parcels/not-a-uuid", "", bearer("tok"))

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, nethttp.StatusBadRequest, decodeError(t, rec).Code)
}

func TestStartRoute(t *testing.T) {
	a := mustAccount(t)
	p := mustParcel(t, a)

	t.Run("sanitizes the note", func(t *testing.T) {
		var got commands.StartRouteCommand
		e := newEcho(t, httpadapter.Handlers{
			StartRoute: handlerFunc[commands.StartRouteCommand, *parcel.Parcel](
				func(_ context.Context, cmd commands.StartRouteCommand) (*parcel.Parcel, error) {
					got = cmd
					require.NoError(t, p.StartRoute(a.ID(), cmd.Note(), now))
					return p, nil
				}),
		}, httpadapter.RouterConfig{})

		rec := do(e, nethttp.MethodPost, "/api/parcels/"+p.ID().String()+"/start-route",
			`{"note":"<script>alert(1)</script>Leaving hub"}`, bearer("tok"))

		require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Leaving hub", got.Note())
		assert.True(t, got.ParcelID().IsEqual(p.ID()))

		var body httpadapter.ParcelResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "en_route", body.Parcel.Status)
	})

	t.Run("wrong state carries the reason", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			StartRoute: handlerFunc[commands.StartRouteCommand, *parcel.Parcel](
				func(context.Context, commands.StartRouteCommand) (*parcel.Parcel, error) {
					return nil, &parcel.StateError{Violation: parcel.WrongState, Action: "start route", Status: parcel.Completed}
				}),
		}, httpadapter.RouterConfig{})

		rec := do(e, nethttp.MethodPost, "/api/parcels/"+p.ID().String()+"/start-route", "", bearer("tok"))

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, "cannot start route: current status is completed", decodeError(t, rec).Message)
	})
}

func TestConfirmDelivery(t *testing.T) {
	a := mustAccount(t)
	p := mustParcel(t, a)
	evidence := []byte{0xff, 0xd8, 0xff, 0xe0}

	var got commands.ConfirmDeliveryCommand
	e := newEcho(t, httpadapter.Handlers{
		Confirm: handlerFunc[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult](
			func(_ context.Context, cmd commands.ConfirmDeliveryCommand) (commands.ConfirmDeliveryResult, error) {
				got = cmd
				in := cmd.Input()
				pod, err := proof.NewProofOfDelivery(kernel.NewUUID(), p.ID(), a.ID(), in.Point, in.AccuracyMeters,
					in.Evidence, in.ReceiverName, in.Outcome, in.FailureReason, in.Comments, now)
				require.NoError(t, err)
				require.NoError(t, p.Finish(a.ID(), true, now))
				return commands.ConfirmDeliveryResult{Parcel: p, Proof: pod}, nil
			}),
	}, httpadapter.RouterConfig{})

	body := `{"latitude":19.4326,"longitude":-99.1332,"accuracy_meters":5,` +
		`"evidence":"` + base64.StdEncoding.EncodeToString(evidence) + `",` +
		`"receiver_name":"<i>Luis</i>","comments":"left at <b>door</b>"}`
	rec := do(e, nethttp.MethodPost, "/api/parcels/"+p.ID().String()+"/confirm-delivery", body, bearer("tok"))

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, evidence, got.Input().Evidence)
	assert.Equal(t, "Luis", got.Input().ReceiverName)
	assert.Equal(t, "left at door", got.Input().Comments)
	assert.Equal(t, proof.Success, got.Input().Outcome)

	var out httpadapter.ConfirmDeliveryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "completed", out.Parcel.Status)
	assert.True(t, out.Proof.HasEvidence)
	assert.Equal(t, "success", out.Proof.Outcome)
}

func TestConfirmDelivery_Rejections(t *testing.T) {
	id := kernel.NewUUID().String()
	e := newEcho(t, httpadapter.Handlers{
		Confirm: handlerFunc[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult](
			func(context.Context, commands.ConfirmDeliveryCommand) (commands.ConfirmDeliveryResult, error) {
				return commands.ConfirmDeliveryResult{}, parcel.NewAlreadyConfirmedError(id)
			}),
	}, httpadapter.RouterConfig{})
	target := "/api/parcels/" + id + "/confirm-delivery"

	rec := do(e, nethttp.MethodPost, target, `{"latitude":91,"longitude":0}`, bearer("tok"))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = do(e, nethttp.MethodPost, target, `{"latitude":1,"longitude":1,"outcome":"lost"}`, bearer("tok"))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = do(e, nethttp.MethodPost, target, `{"latitude":1,"longitude":1}`, bearer("tok"))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "parcel already has a proof of delivery", decodeError(t, rec).Message)
}

func TestGetProof_Missing(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{
		GetProof: handlerFunc[queries.GetProofQuery, queries.ProofResponse](
			func(context.Context, queries.GetProofQuery) (queries.ProofResponse, error) {
				return queries.ProofResponse{}, services.ErrProofNotFound
			}),
	}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodGet, "/api/parcels/"+kernel.NewUUID().String()+"/proof", "", bearer("tok"))

	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestParcelHistory_PassesLimitThrough(t *testing.T) {
	var limit int
	e := newEcho(t, httpadapter.Handlers{
		History: handlerFunc[queries.ParcelHistoryQuery, queries.ParcelListResponse](
			func(_ context.Context, q queries.ParcelHistoryQuery) (queries.ParcelListResponse, error) {
				limit = q.Limit()
				return queries.ParcelListResponse{}, nil
			}),
	}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodGet, "/api/parcels/history?limit=500", "", bearer("tok"))

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, 500, limit)
	assert.JSONEq(t, `{"total":0,"parcels":[]}`, rec.Body.String())
}

func TestListParcels_UnknownStatus(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{}, httpadapter.RouterConfig{})

	rec := do(e, nethttp.MethodGet, "/api/parcels?status=lost", "", bearer("tok"))

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestCollaboratorFailureIsRedacted(t *testing.T) {
	rec := &recorder{}
	e := newEcho(t, httpadapter.Handlers{
		WhoAmI: handlerFunc[queries.WhoAmIQuery, queries.AccountResponse](
			func(context.Context, queries.WhoAmIQuery) (queries.AccountResponse, error) {
				return queries.AccountResponse{}, errors.New("dial tcp 10.0.0.5:5432: connection refused")
			}),
	}, httpadapter.RouterConfig{Recorder: rec})

	res := do(e, nethttp.MethodGet, "/api/auth/me", "", bearer("tok"))

	assert.Equal(t, nethttp.StatusInternalServerError, res.Code)
	assert.Equal(t, "internal server error", decodeError(t, res).Message)
	assert.NotContains(t, res.Body.String(), "10.0.0.5")
	assert.Equal(t, []string{"GET /api/auth/me"}, rec.routes)
}

func TestOperationalEndpoints(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{}, httpadapter.RouterConfig{
		MetricsHandler: nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			_, _ = w.Write([]byte("tracking_logins_total 0\n"))
		}),
	})

	health := do(e, nethttp.MethodGet, "/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())

	spec := do(e, nethttp.MethodGet, "/openapi.yaml", "", nil)
	assert.Equal(t, nethttp.StatusOK, spec.Code)
	assert.Contains(t, spec.Body.String(), "openapi: 3.0.3")

	metrics := do(e, nethttp.MethodGet, "/metrics", "", nil)
	assert.Equal(t, nethttp.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "tracking_logins_total")
}

func TestGetSwagger(t *testing.T) {
	doc, err := httpadapter.GetSwagger()

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/parcels/{id}/confirm-delivery"))
}

func TestTextSanitizer_Clean(t *testing.T) {
	s := httpadapter.NewTextSanitizer()

	assert.Equal(t, "", s.Clean(""))
	assert.Equal(t, "Fish & chips", s.Clean("Fish & chips"))
	assert.Equal(t, "ring twice", s.Clean(`<a href="javascript:x()">ring</a> twice `))
	assert.Equal(t, "", s.Clean("<script>alert(1)</script>"))
}

func TestConfirmDelivery_BodyLimit(t *testing.T) {
	id := kernel.NewUUID().String()
	called := false
	e := newEcho(t, httpadapter.Handlers{
		Confirm: handlerFunc[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult](
			func(context.Context, commands.ConfirmDeliveryCommand) (commands.ConfirmDeliveryResult, error) {
				called = true
				return commands.ConfirmDeliveryResult{}, parcel.NewAlreadyConfirmedError(id)
			}),
	}, httpadapter.RouterConfig{BodyLimit: "1K"})
	target := "/api/parcels/" + id + "/confirm-delivery"

	evidence := base64.StdEncoding.EncodeToString(make([]byte, 2048))
	rec := do(e, nethttp.MethodPost, target,
		`{"latitude":1,"longitude":1,"evidence":"`+evidence+`"}`, bearer("tok"))

	assert.Equal(t, nethttp.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, nethttp.StatusRequestEntityTooLarge, decodeError(t, rec).Code)
	assert.False(t, called)

	rec = do(e, nethttp.MethodPost, target, `{"latitude":1,"longitude":1}`, bearer("tok"))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.True(t, called)
}

func TestNewEcho_InvalidBodyLimit(t *testing.T) {
	_, err := httpadapter.NewEcho(httpadapter.NewServer(httpadapter.Handlers{}, nil, nil),
		httpadapter.RouterConfig{BodyLimit: "lots"})
	assert.Error(t, err)
}
