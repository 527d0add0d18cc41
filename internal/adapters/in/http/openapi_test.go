package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moving/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContractEcho(t *testing.T) *echo.Echo {
	t.Helper()

	doc, err := LoadContract(context.Background())
	require.NoError(t, err)
	validate, err := ValidateRequest(doc)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(logger.NewNop())
	g := e.Group("/api/v1", validate)

	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	g.POST("/quotes", ok)
	g.GET("/orders", ok)
	g.GET("/orders/:id", func(c echo.Context) error {
		id, err := pathInt64(c, "id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, id)
	})
	g.GET("/guest-orders/:id", func(c echo.Context) error {
		id, err := pathUUID(c, "id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, id.String())
	})
	g.POST("/guest-orders/:id/reconcile", ok)
	g.GET("/ws", ok)
	return e
}

func serve(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, Error) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out Error
	if rec.Code >= http.StatusBadRequest {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestLoadContract(t *testing.T) {
	t.Run("should load and describe every routed operation", func(t *testing.T) {
		doc, err := LoadContract(context.Background())

		require.NoError(t, err)
		for _, path := range []string{
			"/api/v1/quotes",
			"/api/v1/orders/{id}/transitions",
			"/api/v1/guest-orders/{id}/reconcile",
			"/api/v1/tickets/{id}/replies",
		} {
			assert.NotNil(t, doc.Paths.Find(path), path)
		}
	})
}

func TestValidateRequest(t *testing.T) {
	e := newContractEcho(t)
	const validQuote = `{"service_type":"packing_supplies","destination":{"line":"Vanak","lat":35.7,"lng":51.4},"products":[{"id":1,"quantity":2}],"origin":null,"heavy_items":null}`

	t.Run("should pass a request that matches the contract", func(t *testing.T) {
		rec, _ := serve(e, http.MethodPost, "/api/v1/quotes", validQuote)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should keep the body readable for the handler", func(t *testing.T) {
		e := echo.New()
		doc, err := LoadContract(context.Background())
		require.NoError(t, err)
		validate, err := ValidateRequest(doc)
		require.NoError(t, err)
		e.POST("/api/v1/quotes", func(c echo.Context) error {
			var req QuoteRequest
			if err := c.Bind(&req); err != nil {
				return err
			}
			return c.String(http.StatusOK, req.ServiceType)
		}, validate)

		rec, _ := serve(e, http.MethodPost, "/api/v1/quotes", validQuote)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "packing_supplies", rec.Body.String())
	})

	t.Run("should reject a body of the wrong shape", func(t *testing.T) {
		cases := map[string]string{
			"string workers":    `{"service_type":"moving","destination":{},"workers":"many"}`,
			"missing type":      `{"destination":{}}`,
			"quantity as text":  `{"service_type":"moving","products":[{"id":1,"quantity":"2"}]}`,
			"not an object":     `[1,2,3]`,
			"fractional worker": `{"service_type":"moving","workers":1.5}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				rec, out := serve(e, http.MethodPost, "/api/v1/quotes", body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "body", out.Field)
			})
		}
	})

	t.Run("should reject malformed path and query parameters", func(t *testing.T) {
		cases := []struct {
			target string
			field  string
		}{
			{"/api/v1/orders/abc", "id"},
			{"/api/v1/orders/0", "id"},
			{"/api/v1/guest-orders/not-a-uuid", "id"},
			{"/api/v1/orders?limit=ten", "limit"},
			{"/api/v1/orders?offset=-1", "offset"},
		}
		for _, tc := range cases {
			t.Run(tc.target, func(t *testing.T) {
				rec, out := serve(e, http.MethodGet, tc.target, "")

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, tc.field, out.Field)
			})
		}
	})

	t.Run("should bind typed path parameters", func(t *testing.T) {
		rec, _ := serve(e, http.MethodGet, "/api/v1/orders/42", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `42`, rec.Body.String())

		const id = "3f2c1a9e-5b7d-4c8e-9a1f-2d3e4f5a6b7c"
		rec, _ = serve(e, http.MethodGet, "/api/v1/guest-orders/"+id, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `"`+id+`"`, rec.Body.String())
	})

	t.Run("should accept operations without a body", func(t *testing.T) {
		rec, _ := serve(e, http.MethodPost, "/api/v1/guest-orders/3f2c1a9e-5b7d-4c8e-9a1f-2d3e4f5a6b7c/reconcile", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should let routes outside the contract through", func(t *testing.T) {
		rec, _ := serve(e, http.MethodGet, "/api/v1/ws", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPathBinding(t *testing.T) {
	e := echo.New()
	bindInt := func(raw string) (int64, error) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return pathInt64(c, "id")
	}

	t.Run("should bind positive ids", func(t *testing.T) {
		id, err := bindInt("7")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("should reject ids that are not positive integers", func(t *testing.T) {
		for _, raw := range []string{"", "x", "-3", "0", "1.5"} {
			_, err := bindInt(raw)
			require.Error(t, err, raw)
			assert.Equal(t, http.StatusBadRequest, toError(err).Code, raw)
		}
	})
}
