package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerly/backend/internal/config"
	"github.com/ledgerly/backend/internal/handler"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/protection"
	"github.com/ledgerly/backend/internal/router"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "https://app.ledgerly.test"

const browserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func newTestRouter() *echo.Echo {
	log := zerolog.Nop()
	cfg := &config.Config{
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{allowedOrigin},
		},
		Auth: config.AuthConfig{
			SignInURL: "/sign-in",
		},
		Protection: config.ProtectionConfig{
			ShieldEnabled:       true,
			BotDetectionEnabled: true,
		},
	}

	s := &server.Server{
		Config:     cfg,
		Logger:     &log,
		Protection: protection.New(cfg.Protection, nil, &log),
	}

	return router.New(s, middleware.NewMiddlewares(s), handler.NewHandlers(s, &service.Services{}))
}

func TestPreflightAnsweredBeforeAuthGate(t *testing.T) {
	e := newTestRouter()

	// Browsers send preflights without credentials, so CORS must answer
	// them before the protection stage or the auth gate sees the request.
	req := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	req.Header.Set(echo.HeaderOrigin, allowedOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestProtectedRouteStillRequiresAuth(t *testing.T) {
	e := newTestRouter()

	// A real cross-origin request without a token keeps getting a 401, and
	// the 401 carries the CORS headers the browser needs to surface it.
	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set(echo.HeaderOrigin, allowedOrigin)
	req.Header.Set("User-Agent", browserAgent)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
