// Package router builds the Echo instance: it installs the middleware chain
// in its enforced order and maps routes to handlers.
package router

import (
	"github.com/ledgerly/backend/internal/handler"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// New assembles the HTTP router.
//
// Middleware order matters: recovery and tracing wrap everything, CORS
// answers browser preflights before the protection stage (preflight requests
// carry no credentials, so they must not hit the auth gate), the protection
// stage rejects hostile traffic before the auth gate runs, and the auth gate
// resolves identity before the request-scoped logger picks up the user id.
// Denied requests never reach a handler.
func New(s *server.Server, middlewares *middleware.Middlewares, handlers *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	e.Use(middlewares.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(middlewares.Tracing.NewRelicMiddleware())
	e.Use(middlewares.Tracing.EnhanceTracing())
	e.Use(middlewares.Global.CORS())
	e.Use(middlewares.Global.Secure())
	e.Use(middlewares.Protection.Enforce())
	e.Use(middlewares.Auth.Gate())
	e.Use(middlewares.ContextEnhancer.EnhanceContext())
	e.Use(middlewares.Global.RequestLogger())

	registerSystemRoutes(e, handlers)
	registerAPIRoutes(e, handlers)

	return e
}
