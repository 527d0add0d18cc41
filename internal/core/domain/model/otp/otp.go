// Package otp provides the OneTimeCode aggregate used by the login and
// registration gate. Only a bcrypt hash of the code is kept.
package otp

import (
	"errors"
	"fmt"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const MaxAttempts = 5

var (
	ErrOneTimeCodeIsNotConstructed = errors.New("OneTimeCode must be created via NewOneTimeCode constructor")

	ErrInvalidOrExpiredCode = errs.NewRuleViolationError("InvalidOrExpiredCode", "code is invalid or expired")
)

type Purpose int

const (
	PurposeUnknown Purpose = iota
	PurposeLogin
	PurposeRegister
)

func (p Purpose) String() string {
	switch p {
	case PurposeLogin:
		return "login"
	case PurposeRegister:
		return "register"
	case PurposeUnknown:
	}
	return "unknown"
}

func ParsePurpose(s string) (Purpose, error) {
	switch s {
	case "login":
		return PurposeLogin, nil
	case "register":
		return PurposeRegister, nil
	}
	return PurposeUnknown, errs.NewValueIsInvalidErrorWithCause("purpose", fmt.Errorf("%q is not a purpose", s))
}

// OneTimeCode is a code issued for a single request id.
type OneTimeCode struct {
	requestID  kernel.UUID
	phone      kernel.Phone
	purpose    Purpose
	codeHash   []byte
	expiresAt  time.Time
	consumedAt *time.Time
	attempts   int
	createdAt  time.Time

	isConstructed bool
}

// NewOneTimeCode hashes code and binds it to a fresh request id.
func NewOneTimeCode(phone kernel.Phone, purpose Purpose, code string, ttl time.Duration, now time.Time) (*OneTimeCode, error) {
	var errList []error
	errList = append(errList, phone.Validate())
	if purpose != PurposeLogin && purpose != PurposeRegister {
		errList = append(errList, errs.NewValueIsInvalidError("purpose"))
	}
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if ttl <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash code: %w", err)
	}

	at := now.UTC()
	return &OneTimeCode{
		requestID:     kernel.NewUUID(),
		phone:         phone,
		purpose:       purpose,
		codeHash:      hash,
		expiresAt:     at.Add(ttl),
		createdAt:     at,
		isConstructed: true,
	}, nil
}

func RestoreOneTimeCode(
	requestID kernel.UUID,
	phone kernel.Phone,
	purpose Purpose,
	codeHash []byte,
	expiresAt time.Time,
	consumedAt *time.Time,
	attempts int,
	createdAt time.Time,
) *OneTimeCode {
	return &OneTimeCode{
		requestID:     requestID,
		phone:         phone,
		purpose:       purpose,
		codeHash:      codeHash,
		expiresAt:     expiresAt,
		consumedAt:    consumedAt,
		attempts:      attempts,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (c *OneTimeCode) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrOneTimeCodeIsNotConstructed
	}
	return nil
}

func (c *OneTimeCode) RequestID() kernel.UUID { return c.requestID }
func (c *OneTimeCode) Phone() kernel.Phone    { return c.phone }
func (c *OneTimeCode) Purpose() Purpose       { return c.purpose }
func (c *OneTimeCode) CodeHash() []byte       { return c.codeHash }
func (c *OneTimeCode) ExpiresAt() time.Time   { return c.expiresAt }
func (c *OneTimeCode) ConsumedAt() *time.Time { return c.consumedAt }
func (c *OneTimeCode) Attempts() int          { return c.attempts }
func (c *OneTimeCode) CreatedAt() time.Time   { return c.createdAt }

func (c *OneTimeCode) IsConsumed() bool {
	return c.consumedAt != nil
}

// IsUsable reports whether the code may still be verified at now.
func (c *OneTimeCode) IsUsable(now time.Time) bool {
	return !c.IsConsumed() && now.Before(c.expiresAt) && c.attempts < MaxAttempts
}

// Verify checks code for phone at now. A failed check counts as an attempt;
// a successful one consumes the code. Every failure returns
// ErrInvalidOrExpiredCode so callers cannot tell the reasons apart.
func (c *OneTimeCode) Verify(code string, phone kernel.Phone, now time.Time) error {
	if !c.IsUsable(now) {
		return ErrInvalidOrExpiredCode.WithCause(errors.New("code is no longer usable"))
	}

	c.attempts++

	if !c.phone.IsEqual(phone) {
		return ErrInvalidOrExpiredCode.WithCause(errors.New("phone mismatch"))
	}
	if err := bcrypt.CompareHashAndPassword(c.codeHash, []byte(code)); err != nil {
		return ErrInvalidOrExpiredCode.WithCause(err)
	}

	at := now.UTC()
	c.consumedAt = &at
	return nil
}
