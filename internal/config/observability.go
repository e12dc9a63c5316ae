package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: logging settings, APM/tracing provider settings
// (New Relic), and dependency health check settings.
//
// It is embedded under Config.Observability and is optional at the root
// level; DefaultObservabilityConfig fills the gap when omitted.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// Hardcoded per service at load time.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is a label used to split telemetry by environment
	// (production, staging, local, ...).
	Environment string `koanf:"environment" validate:"required"`

	// Logging controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging" validate:"required"`

	// NewRelic controls APM and tracing features.
	NewRelic NewRelicConfig `koanf:"new_relic"`

	// HealthChecks controls periodic dependency health checks.
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold is a duration beyond which queries are flagged as
	// slow. Supply parseable duration strings like "250ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
// An empty LicenseKey means "not configured" and disables the agent.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls dependency checks used by the /status endpoint.
type HealthChecksConfig struct {
	// Timeout bounds each individual dependency check, in seconds.
	Timeout int `koanf:"timeout" validate:"required"`
}

// DefaultObservabilityConfig returns a safe default configuration:
// JSON logs at info level, New Relic disabled, 5 second health checks.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 250 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{},
		HealthChecks: HealthChecksConfig{
			Timeout: 5,
		},
	}
}

// Validate enforces constraints that validator tags can't express.
func (o *ObservabilityConfig) Validate() error {
	switch o.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", o.Logging.Level)
	}

	switch o.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q", o.Logging.Format)
	}

	if o.HealthChecks.Timeout <= 0 {
		return fmt.Errorf("health check timeout must be positive, got %d", o.HealthChecks.Timeout)
	}

	return nil
}
