// Package errs holds the typed errors shared by the domain, the use cases
// and the HTTP adapter.
//
// Every type wraps a sentinel so callers classify with errors.Is:
//   - ErrValueIsRequired, ErrValueIsInvalid and ErrValueIsOutOfRange map to 400
//   - ErrObjectNotFound maps to 404
//   - ErrAccessDenied maps to 403
//   - ErrRuleViolation and ErrVersionIsInvalid map to 409
//
// RuleViolationError additionally matches by Code, so a package-level rule
// such as order.ErrDriverRequired still matches after WithCause.
package errs
