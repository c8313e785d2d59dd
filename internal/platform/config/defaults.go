package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitBurst = 10
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.request_timeout":  "30s",
		"server.shutdown_timeout": "15s",

		"log.level":  "info",
		"log.format": "json",

		"database.path":         "data/task-planner.db",
		"database.busy_timeout": "5s",

		"export.formatter":      FormatterLocal,
		"export.output_dir":     "",
		"export.default_format": "text",

		"formatter.base_url":                        "http://localhost:8081",
		"formatter.timeout":                         "10s",
		"formatter.retry.max_attempts":              defaultRetryMaxAttempts,
		"formatter.retry.initial_interval":          "100ms",
		"formatter.retry.max_interval":              "2s",
		"formatter.retry.multiplier":                defaultRetryMultiplier,
		"formatter.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"formatter.circuit_breaker.timeout":         "30s",
		"formatter.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"formatter.rate_limit.requests_per_second":  0,
		"formatter.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "task-planner",
	}
}
