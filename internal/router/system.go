package router

import (
	"github.com/ledgerly/backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes maps endpoints that sit outside the business API.
// These paths are excluded from the protection stage and the auth gate.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Liveness/readiness for load balancers and monitors.
	e.GET("/status", h.Health.CheckHealth)

	// Static assets (favicons, docs artifacts).
	e.Static("/static", "static")
}
