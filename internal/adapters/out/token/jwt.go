// Package token issues and verifies HS256 session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

const issuer = "moving"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("jwt ttl", ttl, time.Second, nil)
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *JWTIssuer) Issue(actor kernel.Actor) (string, time.Time, error) {
	if err := actor.Validate(); err != nil {
		return "", time.Time{}, err
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse returns ErrInvalidToken for anything that is not a live token
// signed with our secret.
func (i *JWTIssuer) Parse(raw string) (kernel.Actor, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, err := kernel.ParseRole(c.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return kernel.NewActor(userID, role)
}
