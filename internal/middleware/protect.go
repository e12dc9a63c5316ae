package middleware

import (
	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/protection"
	"github.com/ledgerly/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// ProtectionMiddleware runs the edge protection stage: shield rules and bot
// detection evaluated once per request, before auth or any handler logic.
type ProtectionMiddleware struct {
	server   *server.Server
	excluded *RouteMatcher
	webhooks *RouteMatcher
}

// NewProtectionMiddleware constructs a ProtectionMiddleware.
func NewProtectionMiddleware(s *server.Server) *ProtectionMiddleware {
	return &ProtectionMiddleware{
		server:   s,
		excluded: ExcludedRoutes(),
		webhooks: WebhookRoutes(),
	}
}

// Enforce returns the Echo middleware for the protection stage.
//
// Static-asset and internal paths skip the check. Webhook delivery paths
// run the shield rules only, since their senders are automated clients the
// bot filter would reject. A denied request short-circuits with 403; the
// handler behind it never executes. Shield and bot blocks are recorded as
// New Relic custom events for alerting.
func (p *ProtectionMiddleware) Enforce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p.excluded.Matches(c.Request().URL.Path) {
				return next(c)
			}

			var decision protection.Decision
			if p.webhooks.Matches(c.Request().URL.Path) {
				decision = p.server.Protection.ProtectWebhook(c.Request())
			} else {
				decision = p.server.Protection.Protect(c.Request())
			}
			if decision.Allowed {
				return next(c)
			}

			p.recordBlock(c, decision)

			return errs.NewForbiddenError("Request blocked", false)
		}
	}
}

func (p *ProtectionMiddleware) recordBlock(c echo.Context, decision protection.Decision) {
	if p.server.LoggerService == nil || p.server.LoggerService.GetApplication() == nil {
		return
	}

	p.server.LoggerService.GetApplication().RecordCustomEvent("ProtectionBlocked", map[string]interface{}{
		"reason":     string(decision.Reason),
		"rule":       decision.RuleID,
		"path":       c.Request().URL.Path,
		"ip":         c.RealIP(),
		"request_id": GetRequestID(c),
	})
}
