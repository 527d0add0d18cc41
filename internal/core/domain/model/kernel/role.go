package kernel

import (
	"fmt"

	"moving/internal/pkg/errs"
)

// Role is fixed when a user is created.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleDriver
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUnknown:  "unknown",
	RoleCustomer: "customer",
	RoleDriver:   "driver",
	RoleAdmin:    "admin",
}

// ParseRole maps "customer", "driver" or "admin" to a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if r != RoleUnknown && name == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", s))
}

func (r Role) Validate() error {
	if r < RoleCustomer || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID UUID
	Role   Role
}

func NewActor(userID UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Role: role}, nil
}

func (a Actor) Validate() error {
	if err := a.UserID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID *UUID) bool {
	return userID != nil && a.UserID.IsEqual(*userID)
}
