package order

import (
	"fmt"

	"moving/internal/pkg/errs"
)

var (
	ErrInvalidTransition = errs.NewRuleViolationError("InvalidTransition", "order status transition is not allowed")
	ErrDriverRequired    = errs.NewRuleViolationError("DriverRequired", "order has no assigned driver")
)

// Action is an operation requested on an order.
type Action int

const (
	ActionUnknown Action = iota
	ActionConfirmPayment
	ActionApprove
	ActionComplete
	ActionCancel
)

var actionNames = map[Action]string{
	ActionUnknown:        "unknown",
	ActionConfirmPayment: "confirm_payment",
	ActionApprove:        "approve",
	ActionComplete:       "complete",
	ActionCancel:         "cancel",
}

func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if a != ActionUnknown && name == s {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return actionNames[ActionUnknown]
}

type transition struct {
	from   Status
	action Action
}

// transitions lists every legal move. Anything absent is rejected.
var transitions = map[transition]Status{
	{PendingPayment, ActionConfirmPayment}: PendingAdminApproval,
	{PendingPayment, ActionCancel}:         Cancelled,
	{PendingAdminApproval, ActionApprove}:  InProgress,
	{PendingAdminApproval, ActionCancel}:   Cancelled,
	{InProgress, ActionComplete}:           Completed,
	{InProgress, ActionCancel}:             Cancelled,
}

// Next returns the status reached by applying action to from,
// or ErrInvalidTransition when the table has no such entry.
func Next(from Status, action Action) (Status, error) {
	to, ok := transitions[transition{from: from, action: action}]
	if !ok {
		return Unknown, ErrInvalidTransition.WithCause(
			fmt.Errorf("%s cannot %s", from, action),
		)
	}
	return to, nil
}
