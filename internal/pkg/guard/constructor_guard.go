// Package guard detects domain objects that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, aggregates, commands and queries.
// Its zero value marks an instance that was not built by the designated constructor.
//
// Example:
//
//	var ErrPhoneIsNotConstructed = errors.New("Phone must be created via NewPhone")
//
//	type Phone struct {
//	    number string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (p Phone) Validate() error {
//	    return p.guard.Validate(ErrPhoneIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
