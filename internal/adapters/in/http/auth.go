package http

import (
	"net/http"
	"strings"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Authenticate reads a bearer token, or the token query parameter for
// websocket upgrades, and stores the caller's actor on the context.
// Requests without a token pass through anonymous; RequireActor rejects them.
func Authenticate(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request())
			if raw == "" {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return next(c)
			}

			actor, err := tokens.Parse(raw)
			if err != nil {
				return err
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireActor rejects anonymous requests. With roles it also checks the
// caller's role.
func RequireActor(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFrom(c)
			if !ok {
				return errUnauthorized
			}
			if len(roles) == 0 {
				return next(c)
			}
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, actor.Role.String()+" may not access this resource")
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	return actor, ok
}

func mustActor(c echo.Context) kernel.Actor {
	actor, _ := actorFrom(c)
	return actor
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
