package order

import (
	"fmt"

	"moving/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// PendingPayment is the entry state of customer-created orders.
	PendingPayment

	// PendingAdminApproval waits for an admin to assign a driver and approve.
	PendingAdminApproval

	// InProgress means a driver is carrying out the order.
	InProgress

	// Completed is terminal.
	Completed

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		PendingPayment:       "PendingPayment",
		PendingAdminApproval: "PendingAdminApproval",
		InProgress:           "InProgress",
		Completed:            "Completed",
		Cancelled:            "Cancelled",
	}
}

// ParseStatus is the inverse of String. Unknown is never returned without an error.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if s < PendingPayment || s > Cancelled {
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

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsAccepted reports whether the order has been approved for execution.
// Customers lose the right to cancel once this is true.
func (s Status) IsAccepted() bool {
	return s == InProgress || s == Completed
}
