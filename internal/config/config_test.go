package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"LEDGERLY_PRIMARY.ENV":                    "test",
		"LEDGERLY_SERVER.PORT":                    "8080",
		"LEDGERLY_SERVER.READ_TIMEOUT":            "10",
		"LEDGERLY_SERVER.WRITE_TIMEOUT":           "15",
		"LEDGERLY_SERVER.IDLE_TIMEOUT":            "60",
		"LEDGERLY_SERVER.CORS_ALLOWED_ORIGINS":    "http://localhost:3000",
		"LEDGERLY_DATABASE.HOST":                  "localhost",
		"LEDGERLY_DATABASE.PORT":                  "5432",
		"LEDGERLY_DATABASE.USER":                  "ledgerly",
		"LEDGERLY_DATABASE.PASSWORD":              "secret",
		"LEDGERLY_DATABASE.NAME":                  "ledgerly_test",
		"LEDGERLY_DATABASE.SSL_MODE":              "disable",
		"LEDGERLY_DATABASE.MAX_OPEN_CONNS":        "10",
		"LEDGERLY_DATABASE.MAX_IDLE_CONNS":        "5",
		"LEDGERLY_DATABASE.CONN_MAX_LIFETIME":     "300",
		"LEDGERLY_DATABASE.CONN_MAX_IDLE_TIME":    "60",
		"LEDGERLY_REDIS.ADDRESS":                  "localhost:6379",
		"LEDGERLY_AUTH.SECRET_KEY":                "sk_test_abc",
		"LEDGERLY_AUTH.WEBHOOK_SECRET":            "whsec_abc",
		"LEDGERLY_AUTH.SIGN_IN_URL":               "/sign-in",
		"LEDGERLY_PROTECTION.SHIELD_ENABLED":      "true",
		"LEDGERLY_PROTECTION.BOT_DETECTION_ENABLED": "true",
		"LEDGERLY_PROTECTION.RATE_LIMIT_MAX":      "10",
		"LEDGERLY_PROTECTION.RATE_LIMIT_WINDOW":   "3600",
	}

	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "/sign-in", cfg.Auth.SignInURL)
	assert.True(t, cfg.Protection.ShieldEnabled)
	assert.Equal(t, int64(10), cfg.Protection.RateLimitMax)
	assert.Equal(t, 3600, cfg.Protection.RateLimitWindow)
}

func TestLoadInjectsObservabilityDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "ledgerly", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Positive(t, cfg.Observability.HealthChecks.Timeout)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.ServiceName = "ledgerly"
	cfg.Environment = "test"

	require.NoError(t, cfg.Validate())

	cfg.HealthChecks.Timeout = 0
	assert.Error(t, cfg.Validate())
}
