package kernel

import (
	"fmt"

	"moving/internal/pkg/errs"
)

// ServiceType scopes orders and pricing factors.
type ServiceType int

const (
	ServiceUnknown ServiceType = iota
	ServiceMoving
	ServicePackingSupplies
)

var serviceTypeNames = map[ServiceType]string{
	ServiceUnknown:         "unknown",
	ServiceMoving:          "moving",
	ServicePackingSupplies: "packing_supplies",
}

func ParseServiceType(s string) (ServiceType, error) {
	for st, name := range serviceTypeNames {
		if st != ServiceUnknown && name == s {
			return st, nil
		}
	}
	return ServiceUnknown, errs.NewValueIsInvalidErrorWithCause("service_type", fmt.Errorf("%q is not a service type", s))
}

func (s ServiceType) Validate() error {
	if s != ServiceMoving && s != ServicePackingSupplies {
		return errs.NewValueIsInvalidErrorWithCause("service_type", fmt.Errorf("%d is not a valid service type", s))
	}
	return nil
}

func (s ServiceType) String() string {
	if name, ok := serviceTypeNames[s]; ok {
		return name
	}
	return serviceTypeNames[ServiceUnknown]
}

// NeedsOrigin reports whether the service picks goods up from an origin address.
func (s ServiceType) NeedsOrigin() bool {
	return s == ServiceMoving
}
