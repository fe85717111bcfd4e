package queries

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via one of the ListParcelsQuery constructors",
)

// ParcelView picks which of the courier's parcels a listing returns.
type ParcelView int

const (
	// AllParcels is every parcel, newest created first, optionally of one status.
	AllParcels ParcelView = iota
	// PendingParcels is Assigned parcels, most recently assigned first.
	PendingParcels
	// EnRouteParcels is EnRoute parcels, most recently assigned first.
	EnRouteParcels
)

type ListParcelsQuery struct {
	token  string
	view   ParcelView
	status *parcel.Status

	guard guard.ConstructorGuard
}

// NewListParcelsQuery lists every parcel of the caller. A non-empty statusCode
// (assigned, en_route, completed, failed) narrows the listing.
func NewListParcelsQuery(token, statusCode string) (ListParcelsQuery, error) {
	q, err := newListParcelsQuery(token, AllParcels)
	if err != nil {
		return ListParcelsQuery{}, err
	}
	if statusCode = strings.ToLower(strings.TrimSpace(statusCode)); statusCode != "" {
		s, err := parcel.ParseStatus(statusCode)
		if err != nil {
			return ListParcelsQuery{}, err
		}
		q.status = &s
	}
	return q, nil
}

func NewPendingParcelsQuery(token string) (ListParcelsQuery, error) {
	return newListParcelsQuery(token, PendingParcels)
}

func NewEnRouteParcelsQuery(token string) (ListParcelsQuery, error) {
	return newListParcelsQuery(token, EnRouteParcels)
}

func newListParcelsQuery(token string, view ParcelView) (ListParcelsQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ListParcelsQuery{}, errs.NewValueIsRequiredError("token")
	}
	return ListParcelsQuery{token: token, view: view, guard: guard.NewConstructorGuard()}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Token() string    { return q.token }
func (q ListParcelsQuery) View() ParcelView { return q.view }

// Status is nil when the listing is not narrowed.
func (q ListParcelsQuery) Status() *parcel.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}
