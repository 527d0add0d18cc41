package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used to classify the typed errors below with errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrRuleViolation     = errors.New("rule violation")
	ErrAccessDenied      = errors.New("access denied")
)

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// VersionIsInvalidError reports an optimistic concurrency conflict.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// RuleViolationError reports a broken business rule identified by Code.
// Two RuleViolationErrors match under errors.Is when their codes are equal,
// so package-level rule errors can be compared against errors carrying a cause.
type RuleViolationError struct {
	Code    string
	Message string
	Cause   error
}

// NewRuleViolationError creates a RuleViolationError.
func NewRuleViolationError(code, message string) *RuleViolationError {
	return &RuleViolationError{Code: code, Message: message}
}

// NewRuleViolationErrorWithCause creates a RuleViolationError wrapping cause.
func NewRuleViolationErrorWithCause(code, message string, cause error) *RuleViolationError {
	return &RuleViolationError{Code: code, Message: message, Cause: cause}
}

// WithCause returns a copy of the rule error carrying cause.
func (e *RuleViolationError) WithCause(cause error) *RuleViolationError {
	return NewRuleViolationErrorWithCause(e.Code, e.Message, cause)
}

func (e *RuleViolationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", e.Code, e.Message), e.Cause)
}

func (e *RuleViolationError) Unwrap() error {
	return ErrRuleViolation
}

func (e *RuleViolationError) Is(target error) bool {
	var other *RuleViolationError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// AccessDeniedError reports an actor attempting an operation it has no authority for.
type AccessDeniedError struct {
	Operation string
	Cause     error
}

// NewAccessDeniedError creates an AccessDeniedError.
func NewAccessDeniedError(operation string) *AccessDeniedError {
	return &AccessDeniedError{Operation: operation}
}

// NewAccessDeniedErrorWithCause creates an AccessDeniedError wrapping cause.
func NewAccessDeniedErrorWithCause(operation string, cause error) *AccessDeniedError {
	return &AccessDeniedError{Operation: operation, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrAccessDenied, e.Operation), e.Cause)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}
