package queries

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrParcelHistoryQueryIsNotConstructed = errors.New(
	"ParcelHistoryQuery must be created via NewParcelHistoryQuery constructor",
)

// ParcelHistoryQuery lists the caller's Completed and Failed parcels by
// completion time, newest first.
type ParcelHistoryQuery struct {
	token string
	limit int

	guard guard.ConstructorGuard
}

// NewParcelHistoryQuery takes limit as given; the handler maps limit < 1 to
// its default and caps it at services.MaxHistoryLimit.
func NewParcelHistoryQuery(token string, limit int) (ParcelHistoryQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ParcelHistoryQuery{}, errs.NewValueIsRequiredError("token")
	}
	return ParcelHistoryQuery{token: token, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ParcelHistoryQuery) Validate() error {
	return q.guard.Validate(ErrParcelHistoryQueryIsNotConstructed)
}

func (q ParcelHistoryQuery) Token() string { return q.token }
func (q ParcelHistoryQuery) Limit() int    { return q.limit }
