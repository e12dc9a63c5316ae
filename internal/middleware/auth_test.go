package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerly/backend/internal/config"
	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Logger: &log,
		Config: &config.Config{
			Auth: config.AuthConfig{
				SignInURL: "/sign-in",
			},
		},
	}
}

func TestGatePassesUnprotectedPaths(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	mw := NewAuthMiddleware(newAuthTestServer())
	err := mw.Gate()(func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.True(t, handlerCalled)
}

func TestGateRejectsMissingTokenWithRedirect(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	mw := NewAuthMiddleware(newAuthTestServer())
	err := mw.Gate()(func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err, "failure handler writes the response itself")
	assert.False(t, handlerCalled, "unauthenticated request must not reach the handler")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body.Code)
	require.NotNil(t, body.Action)
	assert.Equal(t, errs.ActionTypeRedirect, body.Action.Type)
	assert.Equal(t, "/sign-in", body.Action.Value)
}

func TestGateRejectsMalformedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	mw := NewAuthMiddleware(newAuthTestServer())
	err := mw.Gate()(func(c echo.Context) error {
		handlerCalled = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
