package proof

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Outcome is how the hand-over ended.
type Outcome int

const (
	UnknownOutcome Outcome = iota
	Success
	Rejected
	Partial
)

func getOutcomeCodes() map[Outcome]string {
	//nolint:exhaustive // UnknownOutcome has no code
	return map[Outcome]string{
		Success:  "success",
		Rejected: "rejected",
		Partial:  "partial",
	}
}

// ParseOutcome reads a wire code. An empty code means Success.
func ParseOutcome(code string) (Outcome, error) {
	if code == "" {
		return Success, nil
	}
	for o, c := range getOutcomeCodes() {
		if c == code {
			return o, nil
		}
	}
	return UnknownOutcome, errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%q is not a known outcome", code))
}

func (o Outcome) Validate() error {
	if _, ok := getOutcomeCodes()[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%d is not a valid outcome", o))
	}
	return nil
}

func (o Outcome) Code() string {
	return getOutcomeCodes()[o]
}

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Rejected:
		return "Rejected"
	case Partial:
		return "Partial"
	default:
		return "Unknown"
	}
}

// IsDelivered is true only for Success; Rejected and Partial both fail the parcel.
func (o Outcome) IsDelivered() bool {
	return o == Success
}
