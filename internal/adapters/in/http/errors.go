package http

import (
	"errors"
	"net/http"

	"moving/internal/adapters/out/token"
	"moving/internal/core/domain/model/otp"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

// toError classifies err. Unknown errors come back as 500 with a generic
// message; the caller logs them.
func toError(err error) Error {
	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		rule       *errs.RuleViolationError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Message: msg}
	case errors.Is(err, otp.ErrInvalidOrExpiredCode), errors.Is(err, token.ErrInvalidToken):
		return Error{Code: http.StatusUnauthorized, Message: err.Error()}
	case errors.As(err, &required):
		return Error{Code: http.StatusBadRequest, Message: err.Error(), Field: required.ParamName}
	case errors.As(err, &invalid):
		return Error{Code: http.StatusBadRequest, Message: err.Error(), Field: invalid.ParamName}
	case errors.As(err, &outOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error(), Field: outOfRange.ParamName}
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrAccessDenied):
		return Error{Code: http.StatusForbidden, Message: err.Error()}
	case errors.As(err, &rule):
		return Error{Code: http.StatusConflict, Message: err.Error(), Rule: rule.Code}
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	}
	return Error{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
}

// NewErrorHandler renders handler errors as Error bodies.
func NewErrorHandler(log logger.ILogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			log.Error("request failed",
				logger.String("method", c.Request().Method),
				logger.String("path", c.Path()),
				logger.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			log.Warning("write error response", logger.Error(writeErr))
		}
	}
}
