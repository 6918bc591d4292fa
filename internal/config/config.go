// Package config loads the seating plan tools' settings from the environment.
// Values may also come from a .env file in the working directory.
package config

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Plan    PlanConfig
	HTTP    HTTPConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"SEATPLAN_LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"SEATPLAN_LOG_FORMAT" default:"text"`
}

// PlanConfig holds defaults applied when editing a plan.
type PlanConfig struct {
	// DefaultTableCapacity is used for tables created without a capacity (default: 12)
	DefaultTableCapacity int `env:"SEATPLAN_DEFAULT_TABLE_CAPACITY" default:"12"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `env:"SEATPLAN_HTTP_ADDR" default:":8080"`

	// MaxUpload is the largest accepted workbook body in bytes (default: 10MB)
	MaxUpload int64 `env:"SEATPLAN_HTTP_MAX_UPLOAD" default:"10485760"`
}
