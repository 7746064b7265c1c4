package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server.
//
// Build once in NewMiddlewares, reuse everywhere in the router.
type Middlewares struct {
	// Global holds middleware applied to every request: CORS, request
	// logging, recovery, security headers and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer stores a request-scoped logger on every request.
	ContextEnhancer *ContextEnhancer

	// Guard rejects oversized bodies and non-JSON POSTs.
	Guard *RequestGuard

	// RateLimit enforces the per-client token bucket.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Guard:           NewRequestGuard(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}

// Chain returns the global middleware in the order the router installs it:
//  1. RequestID and ContextEnhancer first, so everything after logs with
//     the request-scoped logger
//  2. SecureHeaders before anything that can fail, so error responses
//     carry the headers too
//  3. RequestLogger and Recover around the rest of the chain
//  4. CORS, then the request guard, then rate limiting, so size and
//     content-type rejections never turn into 429s
func (m *Middlewares) Chain() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.SecureHeaders(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.CORS(),
		m.Guard.Guard(),
		m.RateLimit.Limit(),
	}
}
