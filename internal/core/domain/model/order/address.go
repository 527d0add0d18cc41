package order

import (
	"errors"
	"fmt"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
)

const (
	MinFloor = -5
	MaxFloor = 60
)

// AddressKind tells origin and destination apart.
type AddressKind int

const (
	AddressUnknown AddressKind = iota
	AddressOrigin
	AddressDestination
)

func (k AddressKind) String() string {
	switch k {
	case AddressOrigin:
		return "origin"
	case AddressDestination:
		return "destination"
	case AddressUnknown:
	}
	return "unknown"
}

func ParseAddressKind(s string) (AddressKind, error) {
	switch s {
	case "origin":
		return AddressOrigin, nil
	case "destination":
		return AddressDestination, nil
	}
	return AddressUnknown, errs.NewValueIsInvalidErrorWithCause("address_kind", fmt.Errorf("%q is not an address kind", s))
}

// Address is one end of a move.
type Address struct {
	kind        AddressKind
	line        string
	location    kernel.Location
	floor       int
	hasElevator bool
}

func NewAddress(kind AddressKind, line string, location kernel.Location, floor int, hasElevator bool) (Address, error) {
	a := Address{kind: kind, hasElevator: hasElevator}
	if err := errors.Join(
		a.setKind(kind),
		a.setLine(line),
		location.Validate(),
		a.setFloor(floor),
	); err != nil {
		return Address{}, err
	}
	a.location = location
	return a, nil
}

func (a Address) Kind() AddressKind         { return a.kind }
func (a Address) Line() string              { return a.line }
func (a Address) Location() kernel.Location { return a.location }
func (a Address) Floor() int                { return a.floor }
func (a Address) HasElevator() bool         { return a.hasElevator }

// Validate fails for an address that was not built with NewAddress.
func (a Address) Validate() error {
	if a.kind == AddressUnknown {
		return errs.NewValueIsRequiredError("address")
	}
	return a.location.Validate()
}

func (a *Address) setKind(kind AddressKind) error {
	if kind != AddressOrigin && kind != AddressDestination {
		return errs.NewValueIsInvalidErrorWithCause("address_kind", fmt.Errorf("%d is not an address kind", kind))
	}
	a.kind = kind
	return nil
}

func (a *Address) setLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return errs.NewValueIsRequiredError("address_line")
	}
	a.line = line
	return nil
}

func (a *Address) setFloor(floor int) error {
	if floor < MinFloor || floor > MaxFloor {
		return errs.NewValueIsOutOfRangeError("floor", floor, MinFloor, MaxFloor)
	}
	a.floor = floor
	return nil
}
