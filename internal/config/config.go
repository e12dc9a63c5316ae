// Package config manages environment variables.
//
// It reads variables from the environment (optionally seeded from a `.env`
// file), loads them into structured Go types, and validates that required
// values are present so the app fails fast on bad/missing config.
//
// Env vars use the LEDGERLY_ prefix and dot-delimited nesting:
//
//	LEDGERLY_SERVER.PORT -> server.port -> Config.Server.Port
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, godotenv loads it into the
	// process env before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from, and the
// `validate:"required"` tags are enforced by go-playground/validator.
// Observability is a pointer because it is optional; defaults are injected
// at load time when missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Protection    ProtectionConfig     `koanf:"protection" validate:"required"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs/traces and switch behavior (e.g. SQL logging in local).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication-related settings.
//
// SecretKey is the Clerk secret key. WebhookSecret authenticates the Clerk
// user-provisioning webhook. SignInURL is where unauthenticated clients are
// told to go.
type AuthConfig struct {
	SecretKey     string `koanf:"secret_key" validate:"required"`
	WebhookSecret string `koanf:"webhook_secret" validate:"required"`
	SignInURL     string `koanf:"sign_in_url" validate:"required"`
}

// ProtectionConfig tunes the edge protection stage: shield rules, bot
// filtering, and the per-user rate limit applied to account creation.
type ProtectionConfig struct {
	// ShieldEnabled toggles the request shield (suspicious payload checks).
	ShieldEnabled bool `koanf:"shield_enabled"`

	// BotDetectionEnabled toggles User-Agent based bot filtering.
	BotDetectionEnabled bool `koanf:"bot_detection_enabled"`

	// AllowedBots are extra automated clients permitted through the bot
	// filter, matched as a substring of the User-Agent. Search engine
	// crawlers are always allowed regardless of this list.
	AllowedBots []string `koanf:"allowed_bots"`

	// RateLimitMax is the number of units allowed per window.
	RateLimitMax int64 `koanf:"rate_limit_max" validate:"required"`

	// RateLimitWindow is the fixed window size in seconds.
	RateLimitWindow int `koanf:"rate_limit_window" validate:"required"`
}

// EmailConfig holds settings for transactional email (Resend).
// Optional: when APIKey is empty, email sending is disabled.
type EmailConfig struct {
	APIKey string `koanf:"api_key"`
	From   string `koanf:"from"`
}

// Load reads configuration from environment variables, unmarshals it into
// Config, validates it, applies observability defaults, and returns the
// resulting config.
//
// It logs fatally on any failure: there is no point continuing with a broken
// config.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	// Only env vars prefixed LEDGERLY_ are read; the prefix is stripped and
	// the rest lowercased, so LEDGERLY_DATABASE.HOST -> database.host.
	err := k.Load(env.Provider("LEDGERLY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LEDGERLY_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	// Observability is optional at the root; inject defaults when missing.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force service name and environment regardless of what was set, so
	// tracing/logging sees consistent naming.
	mainConfig.Observability.ServiceName = "ledgerly"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
