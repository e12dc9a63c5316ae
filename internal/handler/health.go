package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and dependency reachability for
// load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                     `json:"status"`
	Timestamp   time.Time                  `json:"timestamp"`
	Environment string                     `json:"environment"`
	Checks      map[string]dependencyCheck `json:"checks"`
}

// CheckHealth pings Postgres and Redis and returns 200 when both respond,
// 503 otherwise. Redis counts as required: the rate limiter fails closed
// without it, so a reachable-but-redisless instance should be pulled from
// rotation.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	timeout := time.Duration(h.server.Config.Observability.HealthChecks.Timeout) * time.Second

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]dependencyCheck),
	}

	healthy := true

	check := func(name string, ping func(ctx context.Context) error) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		checkStart := time.Now()
		if err := ping(ctx); err != nil {
			healthy = false
			response.Checks[name] = dependencyCheck{
				Status:       "unhealthy",
				ResponseTime: time.Since(checkStart).String(),
				Error:        err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordHealthCheckError(name, time.Since(checkStart), err)
			return
		}

		response.Checks[name] = dependencyCheck{
			Status:       "healthy",
			ResponseTime: time.Since(checkStart).String(),
		}
	}

	check("database", func(ctx context.Context) error {
		return h.server.DB.Pool.Ping(ctx)
	})
	check("redis", func(ctx context.Context) error {
		return h.server.Redis.Ping(ctx).Err()
	})

	if !healthy {
		response.Status = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordHealthCheckError(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		},
	)
}
