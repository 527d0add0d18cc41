package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"moving/internal/adapters/out/token"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/model/otp"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToError(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		code  int
		field string
		rule  string
	}{
		{"required value", errs.NewValueIsRequiredError("phone"), http.StatusBadRequest, "phone", ""},
		{"invalid value", errs.NewValueIsInvalidError("lat"), http.StatusBadRequest, "lat", ""},
		{"out of range", errs.NewValueIsOutOfRangeError("workers", 99, 0, 20), http.StatusBadRequest, "workers", ""},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("origin"), errs.NewValueIsInvalidError("floor")), http.StatusBadRequest, "origin", ""},
		{"not found", errs.NewObjectNotFoundError("order", 7), http.StatusNotFound, "", ""},
		{"access denied", errs.NewAccessDeniedError("approve order 7"), http.StatusForbidden, "", ""},
		{"invalid code", otp.ErrInvalidOrExpiredCode.WithCause(errors.New("wrong")), http.StatusUnauthorized, "", ""},
		{"invalid token", fmt.Errorf("%w: expired", token.ErrInvalidToken), http.StatusUnauthorized, "", ""},
		{"rule violation", order.ErrInvalidTransition, http.StatusConflict, "", "InvalidTransition"},
		{"echo error", echo.NewHTTPError(http.StatusForbidden, "nope"), http.StatusForbidden, "", ""},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "", ""},
	}

	for _, tc := range cases {
		t.Run("should map "+tc.name, func(t *testing.T) {
			got := toError(tc.err)

			assert.Equal(t, tc.code, got.Code)
			assert.Equal(t, tc.field, got.Field)
			assert.Equal(t, tc.rule, got.Rule)
		})
	}

	t.Run("should not leak internal messages", func(t *testing.T) {
		got := toError(errors.New("pq: password authentication failed"))
		assert.NotContains(t, got.Message, "password")
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Run("should render the error as json", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		NewErrorHandler(logger.NewNop())(errs.NewObjectNotFoundError("ticket", 3), c)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":404`)
	})
}
