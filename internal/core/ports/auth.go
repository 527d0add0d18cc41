package ports

import (
	"context"
	"time"

	"moving/internal/core/domain/model/kernel"
)

// TokenIssuer creates and checks session tokens carrying identity and role.
type TokenIssuer interface {
	Issue(actor kernel.Actor) (token string, expiresAt time.Time, err error)

	Parse(token string) (kernel.Actor, error)
}

// CodeGenerator produces one-time codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeSender delivers a one-time code to a phone out of band.
type CodeSender interface {
	Send(ctx context.Context, phone kernel.Phone, code string) error
}
