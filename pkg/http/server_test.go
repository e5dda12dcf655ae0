package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NextWorth/pkg/http/middleware"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

type sample struct {
	Symbol  string   `json:"symbol" validate:"required"`
	History []string `json:"history" validate:"required"`
	Unit    string   `json:"unit" default:"USD"`
}

type fakeAllower struct {
	allow bool
	err   error
}

func (f fakeAllower) Allow(context.Context, string) (bool, error) { return f.allow, f.err }

func testServer(opts ...ServerOption) *Server {
	h := routes(func(e *echo.Echo) {
		e.POST("/echo", func(c echo.Context) error {
			var s sample
			if err := ReadAndValidateRequest(c, &s); err != nil {
				return AppErrorResponse(c, err)
			}
			return SuccessResponse(c, s)
		})
		e.GET("/fail", func(c echo.Context) error {
			return errors.New("db password is hunter2")
		})
	})
	return NewServer(h, append([]ServerOption{WithMetrics(false, "")}, opts...)...)
}

func serve(s *Server, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestReadAndValidateRequest(t *testing.T) {
	s := testServer()

	rec := serve(s, http.MethodPost, "/echo", `{"symbol":"A","history":["x"]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got sample
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sample{Symbol: "A", History: []string{"x"}, Unit: "USD"}, got)

	rec = serve(s, http.MethodPost, "/echo", `{"unit":"EUR"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"missing required fields: symbol, history"}`, rec.Body.String())

	rec = serve(s, http.MethodPost, "/echo", `[1,2`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())

	for _, body := range []string{"", "  ", "null", "{}", " { } ", "[]"} {
		rec = serve(s, http.MethodPost, "/echo", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%q", body)
		assert.JSONEq(t, `{"error":"no data provided"}`, rec.Body.String(), "%q", body)
	}
}

func TestIsEmptyPayload(t *testing.T) {
	assert.True(t, IsEmptyPayload(nil))
	assert.True(t, IsEmptyPayload([]byte(" null ")))
	assert.True(t, IsEmptyPayload([]byte("{\n}")))
	assert.False(t, IsEmptyPayload([]byte(`{"symbol":""}`)))
	assert.True(t, IsEmptyPayload([]byte(`[ ]`)))
	assert.False(t, IsEmptyPayload([]byte(`[1]`)))
	assert.False(t, IsEmptyPayload([]byte(`{`)))
}

func TestErrorHandler(t *testing.T) {
	s := testServer()

	rec := serve(s, http.MethodGet, "/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"endpoint not found"}`, rec.Body.String())

	rec = serve(s, http.MethodGet, "/fail", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRequestIDIsReused(t *testing.T) {
	s := testServer()
	rec := serve(s, http.MethodGet, "/missing", "", map[string]string{echo.HeaderXRequestID: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))

	rec = serve(s, http.MethodGet, "/missing", "", nil)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestCORSPreflight(t *testing.T) {
	s := testServer()
	rec := serve(s, http.MethodOptions, "/echo", "", map[string]string{echo.HeaderOrigin: "http://app.local"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
}

func TestRateLimitMiddleware(t *testing.T) {
	body := `{"symbol":"A","history":["x"]}`

	limited := testServer(WithMiddleware(middleware.RateLimit(fakeAllower{allow: false}, nil)))
	rec := serve(limited, http.MethodPost, "/echo", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())

	broken := testServer(WithMiddleware(middleware.RateLimit(fakeAllower{err: errors.New("redis down")}, nil)))
	rec = serve(broken, http.MethodPost, "/echo", body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
