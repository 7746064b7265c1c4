package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/tripweaver/internal/config"
	"github.com/deppfellow/tripweaver/internal/errs"
	"github.com/deppfellow/tripweaver/internal/index"
	"github.com/deppfellow/tripweaver/internal/server"
)

func newTestEcho(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := server.NewWithIndex(cfg, &logger, index.Empty("memory", nil))
	m := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(m.Chain()...)

	e.POST("/echo", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
	})
	e.GET("/ok", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("database password leaked here")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("kaboom")
	})
	e.GET("/bad", func(c echo.Context) error {
		return errs.NewBadRequestError("Nope", nil, nil)
	})

	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func assertSecurityHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	for name, value := range SecurityHeaders {
		assert.Equal(t, value, rec.Header().Get(name), name)
	}
}

func TestSecureHeaders_OnEveryResponse(t *testing.T) {
	e := newTestEcho(t, config.Default())

	for _, path := range []string{"/ok", "/boom", "/bad", "/panic", "/missing"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))
		assertSecurityHeaders(t, rec)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	e := newTestEcho(t, config.Default())

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/missing", http.StatusNotFound, `{"detail":"Route not found"}`},
		{"/boom", http.StatusInternalServerError, `{"detail":"Internal server error"}`},
		{"/panic", http.StatusInternalServerError, `{"detail":"Internal server error"}`},
		{"/bad", http.StatusBadRequest, `{"detail":"Nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(e, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestGuard_ContentLengthTooLarge(t *testing.T) {
	e := newTestEcho(t, config.Default())

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.ContentLength = config.DefaultBodyLimit + 1

	rec := serve(e, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"detail":"Request entity too large"}`, rec.Body.String())
	assertSecurityHeaders(t, rec)
}

func TestGuard_UnknownLength(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BodyLimit = 16
	e := newTestEcho(t, cfg)

	// MultiReader hides the length, like a chunked upload.
	req := httptest.NewRequest(http.MethodPost, "/echo", io.MultiReader(strings.NewReader(`{"a":"0123456789abcdef"}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	require.Equal(t, int64(-1), req.ContentLength)

	rec := serve(e, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	body := []byte(`{"a":"é"}`)
	req = httptest.NewRequest(http.MethodPost, "/echo", io.MultiReader(bytes.NewReader(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.Bytes())
}

func TestGuard_ContentType(t *testing.T) {
	e := newTestEcho(t, config.Default())

	tests := []struct {
		contentType string
		status      int
	}{
		{"application/json", http.StatusOK},
		{"application/json; charset=utf-8", http.StatusOK},
		{"text/plain", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}

			rec := serve(e, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusBadRequest {
				assert.JSONEq(t, `{"detail":"Invalid content type. Only application/json is supported."}`, rec.Body.String())
			}
		})
	}

	// GET requests are not subject to the content-type rule.
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RPS = 1
	cfg.Server.RateLimit.Burst = 1
	e := newTestEcho(t, cfg)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"detail":"Too many requests"}`, rec.Body.String())
	assertSecurityHeaders(t, rec)

	// Health checks are exempt.
	for range 3 {
		rec = serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_GuardRunsFirst(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RPS = 1
	cfg.Server.RateLimit.Burst = 1
	e := newTestEcho(t, cfg)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The bucket is empty now, but guard rejections still win.
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.ContentLength = config.DefaultBodyLimit + 1
	rec = serve(e, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, "text/plain")
	rec = serve(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit_DisabledByDefault(t *testing.T) {
	e := newTestEcho(t, config.Default())

	for range 100 {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = false
	cfg.Server.RateLimit.RPS = 1
	cfg.Server.RateLimit.Burst = 1
	e := newTestEcho(t, cfg)

	for range 5 {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	e := newTestEcho(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := serve(e, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestCORS(t *testing.T) {
	e := newTestEcho(t, config.Default())

	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

	rec := serve(e, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example")
	rec = serve(e, req)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
