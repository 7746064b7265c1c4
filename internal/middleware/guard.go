package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/tripweaver/internal/config"
	"github.com/deppfellow/tripweaver/internal/errs"
	"github.com/deppfellow/tripweaver/internal/server"
)

// jsonContentType is the only media type accepted on POST bodies.
const jsonContentType = echo.MIMEApplicationJSON

// RequestGuard rejects requests the handlers must never see.
type RequestGuard struct {
	server *server.Server
}

// NewRequestGuard constructs a RequestGuard.
func NewRequestGuard(s *server.Server) *RequestGuard {
	return &RequestGuard{server: s}
}

// Guard returns the request guard middleware. Checks run in order:
//
//  1. declared Content-Length above the body limit -> 413
//  2. POST whose Content-Type does not start with application/json -> 400
//  3. body of unknown length above the body limit -> 413
//
// A body of unknown length is read up to the limit and replaced with an
// identical in-memory copy, so handlers always see the exact bytes sent.
func (g *RequestGuard) Guard() echo.MiddlewareFunc {
	limit := g.server.Config.Server.BodyLimit
	if limit <= 0 {
		limit = config.DefaultBodyLimit
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if req.ContentLength > limit {
				return errs.NewRequestEntityTooLargeError()
			}

			if req.Method == http.MethodPost &&
				!strings.HasPrefix(req.Header.Get(echo.HeaderContentType), jsonContentType) {
				return errs.NewBadRequestError(errs.DetailInvalidContentType, nil, nil)
			}

			if req.ContentLength < 0 && req.Body != nil && req.Body != http.NoBody {
				body, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, limit))
				if err != nil {
					var maxBytesErr *http.MaxBytesError
					if errors.As(err, &maxBytesErr) {
						return errs.NewRequestEntityTooLargeError()
					}
					return errs.NewBadRequestError(errs.DetailInvalidRequestBody, nil, nil)
				}

				req.Body = io.NopCloser(bytes.NewReader(body))
				req.ContentLength = int64(len(body))
			}

			return next(c)
		}
	}
}
