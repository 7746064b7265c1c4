package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/tripweaver/internal/config"
	"github.com/deppfellow/tripweaver/internal/errs"
	"github.com/deppfellow/tripweaver/internal/server"
)

// SecurityHeaders is the fixed set of headers put on every response.
var SecurityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

// GlobalMiddlewares groups middleware applied to every request and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware for the configured browser origins.
//
// Only GET and POST with Content-Type/Accept headers are allowed, with
// credentials.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	origins := global.server.Config.Server.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = config.DefaultCORSAllowedOrigins
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	})
}

// SecureHeaders sets SecurityHeaders before the rest of the chain runs, so
// error responses written by the global error handler carry them too.
//
// Echo's own Secure middleware only sends HSTS over TLS, which is not what
// a service behind a TLS-terminating proxy needs.
func (global *GlobalMiddlewares) SecureHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for name, value := range SecurityHeaders {
				h.Set(name, value)
			}
			return next(c)
		}
	}
}

// RequestLogger emits one "API" log line per request through the
// request-scoped logger.
//
// Level follows the final status: 5xx error, 4xx warn, otherwise info.
// Requests slower than the configured threshold are flagged as slow.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	slowThreshold := global.server.Config.Observability.Logging.SlowRequestThreshold

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The global error handler decides the final status after this
			// runs, so derive it from the returned error.
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if slowThreshold > 0 && v.Latency > slowThreshold {
				e = e.Bool("slow", true)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors handled by GlobalErrorHandler,
// which answers them with a generic 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Str("stack", string(stack)).
				Msg("recovered from panic")
			return fmt.Errorf("panic: %w", err)
		},
	})
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error becomes an errs.HTTPError serialized as {"detail": ...}.
// Unknown errors and all 5xx answers use the generic detail; the original
// error is only logged.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var event *zerolog.Event
	if httpErr.Status >= 500 {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Detail)

	if c.Response().Committed {
		return
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Status)
	} else {
		writeErr = c.JSON(httpErr.Status, httpErr)
	}
	if writeErr != nil {
		logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}

// toHTTPError maps any error returned through the chain to the response
// that is sent for it.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= 500 {
			return errs.NewInternalServerError()
		}
		return httpErr
	}

	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return errs.NewInternalServerError()
	}

	switch echoErr.Code {
	case http.StatusNotFound:
		return errs.NewNotFoundError("Route not found")
	case http.StatusRequestEntityTooLarge:
		return errs.NewRequestEntityTooLargeError()
	case http.StatusTooManyRequests:
		return errs.NewTooManyRequestsError()
	case http.StatusBadRequest:
		return errs.NewBadRequestError(errs.DetailInvalidRequestBody, nil, nil)
	}

	if echoErr.Code >= 500 {
		return errs.NewInternalServerError()
	}

	detail := http.StatusText(echoErr.Code)
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		detail = msg
	}

	return &errs.HTTPError{
		Code:   errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Detail: detail,
		Status: echoErr.Code,
	}
}

// statusFromError is the status GlobalErrorHandler will answer err with.
func statusFromError(err error) int {
	return toHTTPError(err).Status
}
