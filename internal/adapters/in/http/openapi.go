package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"moving/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yml
var openAPIContract []byte

// LoadContract parses the embedded API contract and checks that it is a
// valid OpenAPI 3 document.
func LoadContract(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIContract)
	if err != nil {
		return nil, fmt.Errorf("load api contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api contract: %w", err)
	}
	return doc, nil
}

// ValidateRequest rejects requests whose path parameters, query or body
// do not match doc. Routes that doc does not describe, such as the
// websocket endpoint, pass through untouched. Authorization stays with
// Authenticate and RequireActor.
func ValidateRequest(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("route api contract: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, params, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(c)
			}
			if err != nil {
				return err
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: params,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return contractViolation(err)
			}
			return next(c)
		}
	}, nil
}

func contractViolation(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	field := "body"
	if reqErr.Parameter != nil {
		field = reqErr.Parameter.Name
	}
	return errs.NewValueIsInvalidErrorWithCause(field, reqErr)
}
