package user

import (
	"fmt"

	"moving/internal/pkg/errs"
)

var ErrInvalidDriverStatusTransition = errs.NewRuleViolationError(
	"InvalidDriverStatusTransition", "driver status transition is not allowed",
)

type DriverStatus int

const (
	DriverStatusUnknown DriverStatus = iota
	DriverPendingApproval
	DriverActive
	DriverInactive
	DriverSuspended
)

var driverStatusNames = map[DriverStatus]string{
	DriverStatusUnknown:   "Unknown",
	DriverPendingApproval: "PendingApproval",
	DriverActive:          "Active",
	DriverInactive:        "Inactive",
	DriverSuspended:       "Suspended",
}

var driverTransitions = map[DriverStatus][]DriverStatus{
	DriverPendingApproval: {DriverActive},
	DriverActive:          {DriverInactive, DriverSuspended},
	DriverInactive:        {DriverActive},
	DriverSuspended:       {DriverActive},
}

func ParseDriverStatus(s string) (DriverStatus, error) {
	for st, name := range driverStatusNames {
		if st != DriverStatusUnknown && name == s {
			return st, nil
		}
	}
	return DriverStatusUnknown, errs.NewValueIsInvalidErrorWithCause("driver_status", fmt.Errorf("%q is not a driver status", s))
}

func (s DriverStatus) Validate() error {
	if s < DriverPendingApproval || s > DriverSuspended {
		return errs.NewValueIsInvalidErrorWithCause("driver_status", fmt.Errorf("%d is not a driver status", s))
	}
	return nil
}

func (s DriverStatus) String() string {
	if name, ok := driverStatusNames[s]; ok {
		return name
	}
	return driverStatusNames[DriverStatusUnknown]
}

// CanBecome reports whether the table allows moving from s to to.
func (s DriverStatus) CanBecome(to DriverStatus) bool {
	for _, allowed := range driverTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
