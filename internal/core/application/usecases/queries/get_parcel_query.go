package queries

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
	ErrGetProofQueryIsNotConstructed = errors.New(
		"GetProofQuery must be created via NewGetProofQuery constructor",
	)
)

// GetParcelQuery reads one parcel the caller holds.
type GetParcelQuery struct {
	parcelRef
}

func NewGetParcelQuery(token string, parcelID kernel.UUID) (GetParcelQuery, error) {
	ref, err := newParcelRef(token, parcelID)
	return GetParcelQuery{parcelRef: ref}, err
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// GetProofQuery reads the proof of delivery of a parcel the caller holds.
type GetProofQuery struct {
	parcelRef
}

func NewGetProofQuery(token string, parcelID kernel.UUID) (GetProofQuery, error) {
	ref, err := newParcelRef(token, parcelID)
	return GetProofQuery{parcelRef: ref}, err
}

func (q GetProofQuery) Validate() error {
	return q.guard.Validate(ErrGetProofQueryIsNotConstructed)
}

type parcelRef struct {
	token    string
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func newParcelRef(token string, parcelID kernel.UUID) (parcelRef, error) {
	var tokenErr, idErr error
	token = strings.TrimSpace(token)
	if token == "" {
		tokenErr = errs.NewValueIsRequiredError("token")
	}
	if err := parcelID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	if err := errors.Join(tokenErr, idErr); err != nil {
		return parcelRef{}, err
	}
	return parcelRef{token: token, parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (r parcelRef) Token() string         { return r.token }
func (r parcelRef) ParcelID() kernel.UUID { return r.parcelID }
