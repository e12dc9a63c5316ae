// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns: the edge
// protection stage (shield, bot detection), the auth gate (Clerk), request
// logging, CORS, rate-limit telemetry, and panic recovery.
package middleware

import (
	"github.com/ledgerly/backend/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server, so shared dependencies are wired in
// one place instead of scattered through routing code.
type Middlewares struct {
	// Global holds middleware used across the whole API: CORS, request
	// logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// Protection runs the edge protection stage (shield + bot detection)
	// before anything else. Denied requests never reach a handler.
	Protection *ProtectionMiddleware

	// Auth is the auth gate: protected path prefixes require a resolved
	// Clerk identity, everything else passes through.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, optional user and trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach custom
	// attributes and notice errors on transactions.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components using the application
// container. When New Relic is not configured, nrApp is nil and tracing
// middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Protection:      NewProtectionMiddleware(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
