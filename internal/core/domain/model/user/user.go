package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

const (
	MinWorkerCount = 0
	MaxWorkerCount = 20
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	ErrNotADriver = errs.NewRuleViolationError("NotADriver", "user is not a driver")
)

// Vehicle is the registration data a driver must supply.
type Vehicle struct {
	Model       string
	PlateNumber string
	WorkerCount int
}

// DriverProfile is the driver-only part of a user.
type DriverProfile struct {
	vehicle Vehicle
	status  DriverStatus
}

func (p DriverProfile) Vehicle() Vehicle     { return p.vehicle }
func (p DriverProfile) Status() DriverStatus { return p.status }

// User is a registered account.
type User struct {
	id        kernel.UUID
	phone     kernel.Phone
	role      kernel.Role
	firstName string
	lastName  string
	createdAt time.Time
	driver    *DriverProfile

	isConstructed bool
}

// NewUser registers a user. vehicle is required for drivers and ignored for
// other roles. New drivers start in DriverPendingApproval.
func NewUser(phone kernel.Phone, role kernel.Role, firstName, lastName string, vehicle *Vehicle) (*User, error) {
	u := &User{
		id:            kernel.NewUUID(),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		phone.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	u.phone = phone
	u.role = role
	u.firstName = strings.TrimSpace(firstName)
	u.lastName = strings.TrimSpace(lastName)

	if role == kernel.RoleDriver {
		if err := u.setDriver(vehicle); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// RestoreUser rebuilds a user from storage.
func RestoreUser(
	id kernel.UUID,
	phone kernel.Phone,
	role kernel.Role,
	firstName, lastName string,
	createdAt time.Time,
	vehicle *Vehicle,
	driverStatus DriverStatus,
) *User {
	u := &User{
		id:            id,
		phone:         phone,
		role:          role,
		firstName:     firstName,
		lastName:      lastName,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if vehicle != nil {
		u.driver = &DriverProfile{vehicle: *vehicle, status: driverStatus}
	}
	return u
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID        { return u.id }
func (u *User) Phone() kernel.Phone    { return u.phone }
func (u *User) Role() kernel.Role      { return u.role }
func (u *User) FirstName() string      { return u.firstName }
func (u *User) LastName() string       { return u.lastName }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) Driver() *DriverProfile { return u.driver }

func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// Actor returns the identity used to authorize this user's operations.
func (u *User) Actor() kernel.Actor {
	return kernel.Actor{UserID: u.id, Role: u.role}
}

// CanDeliver reports whether the user is an active driver.
func (u *User) CanDeliver() bool {
	return u.driver != nil && u.driver.status == DriverActive
}

// ChangeDriverStatus moves a driver to status on behalf of an admin.
func (u *User) ChangeDriverStatus(actor kernel.Actor, status DriverStatus) error {
	if !actor.IsAdmin() {
		return errs.NewAccessDeniedError("change driver status")
	}
	if u.driver == nil {
		return ErrNotADriver
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if !u.driver.status.CanBecome(status) {
		return ErrInvalidDriverStatusTransition.WithCause(
			fmt.Errorf("%s cannot become %s", u.driver.status, status),
		)
	}

	u.driver.status = status
	return nil
}

func (u *User) setDriver(vehicle *Vehicle) error {
	if vehicle == nil {
		return errs.NewValueIsRequiredError("vehicle")
	}

	v := Vehicle{
		Model:       strings.TrimSpace(vehicle.Model),
		PlateNumber: strings.TrimSpace(vehicle.PlateNumber),
		WorkerCount: vehicle.WorkerCount,
	}

	var errList []error
	if v.Model == "" {
		errList = append(errList, errs.NewValueIsRequiredError("vehicle_model"))
	}
	if v.PlateNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("plate_number"))
	}
	if v.WorkerCount < MinWorkerCount || v.WorkerCount > MaxWorkerCount {
		errList = append(errList, errs.NewValueIsOutOfRangeError("worker_count", v.WorkerCount, MinWorkerCount, MaxWorkerCount))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	u.driver = &DriverProfile{vehicle: v, status: DriverPendingApproval}
	return nil
}
