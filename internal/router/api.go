package router

import (
	"net/http"

	"github.com/ledgerly/backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes maps the business API. Everything under /api requires a
// resolved identity; the auth gate enforces that by path prefix before these
// handlers run.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers) {
	api := e.Group("/api")

	accounts := api.Group("/accounts")
	accounts.GET("", handler.Handle(h.Accounts.Handler, h.Accounts.List, http.StatusOK, &handler.EmptyRequest{}))
	accounts.POST("", handler.Handle(h.Accounts.Handler, h.Accounts.Create, http.StatusCreated, &handler.CreateAccountRequest{}))

	api.GET("/dashboard", handler.Handle(h.Dashboard.Handler, h.Dashboard.Get, http.StatusOK, &handler.EmptyRequest{}))

	// Webhook ingestion authenticates by signature, not by session; it sits
	// outside the /api prefix so the auth gate skips it.
	e.POST("/webhooks/clerk", h.Webhooks.HandleClerkEvent)
}
