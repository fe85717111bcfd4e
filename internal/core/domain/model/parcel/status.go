package parcel

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status is the position of a parcel in its delivery lifecycle.
//
//	Assigned ──> EnRoute ──┬──> Completed
//	    │                  └──> Failed
//	    └──────(proof)─────┬──> Completed
//	                       └──> Failed
//
// Completed and Failed are terminal.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Assigned
	EnRoute
	Completed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		EnRoute:   "EnRoute",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

// getStatusCodes maps valid statuses to their wire and storage codes.
func getStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown has no code
	return map[Status]string{
		Assigned:  "assigned",
		EnRoute:   "en_route",
		Completed: "completed",
		Failed:    "failed",
	}
}

// ParseStatus converts a wire code such as "en_route" into a Status.
func ParseStatus(code string) (Status, error) {
	for s, c := range getStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status code", code))
}

func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Code returns the lower-case code used on the wire, or "" for invalid values.
func (s Status) Code() string {
	return getStatusCodes()[s]
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// CanConfirm reports whether a proof of delivery may be attached.
// Assigned is accepted so couriers who never started the route can still confirm.
func (s Status) CanConfirm() bool {
	return s == Assigned || s == EnRoute
}

// StartRoute moves Assigned to EnRoute.
func (s Status) StartRoute() (Status, error) {
	if s != Assigned {
		return Unknown, newWrongStateError("start route", s)
	}
	return EnRoute, nil
}

// Finish moves a confirmable status to Completed when delivered, otherwise to Failed.
func (s Status) Finish(delivered bool) (Status, error) {
	if !s.CanConfirm() {
		return Unknown, newWrongStateError("confirm delivery", s)
	}
	if delivered {
		return Completed, nil
	}
	return Failed, nil
}
