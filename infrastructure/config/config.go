package config

import (
	"fmt"
	"time"
)

// Config represents the complete server configuration.
type Config struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Version is the configuration schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the server's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Server contains transport settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `json:"database" yaml:"database"`
	// Logging contains logging settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Telemetry contains tracing and metrics settings.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// ServerConfig contains MCP transport settings.
type ServerConfig struct {
	// Transport selects how the server listens (stdio or http).
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`
	// Addr is the listen address for the http transport.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Instructions overrides the server usage instructions sent to clients.
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	// Host is the database server host.
	Host string `json:"host" yaml:"host"`
	// Port is the database server port.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
	// Database is the database name.
	Database string `json:"database" yaml:"database"`
	// User is the database user.
	User string `json:"user" yaml:"user"`
	// Password is the database password.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// SSLMode is the PostgreSQL sslmode setting.
	SSLMode string `json:"ssl_mode,omitempty" yaml:"ssl_mode,omitempty"`
	// MaxConns is the maximum pool size.
	MaxConns int32 `json:"max_conns,omitempty" yaml:"max_conns,omitempty"`
	// MinConns is the minimum pool size.
	MinConns int32 `json:"min_conns,omitempty" yaml:"min_conns,omitempty"`
	// MaxConnLifetime is the maximum lifetime of a pooled connection.
	MaxConnLifetime Duration `json:"max_conn_lifetime,omitempty" yaml:"max_conn_lifetime,omitempty"`
	// MaxConnIdleTime is the maximum idle time of a pooled connection.
	MaxConnIdleTime Duration `json:"max_conn_idle_time,omitempty" yaml:"max_conn_idle_time,omitempty"`
	// ConnectTimeout is the connection establishment timeout.
	ConnectTimeout Duration `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"`
}

// Redacted returns a loggable description of the connection target
// without credentials.
func (d DatabaseConfig) Redacted() string {
	return fmt.Sprintf("host=%s port=%d database=%s user=%s", d.Host, d.Port, d.Database, d.User)
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format (json or console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// TelemetryConfig contains tracing and metrics settings.
type TelemetryConfig struct {
	// Enabled enables OpenTelemetry tracing.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Exporter selects the span exporter (stdout, otlp, none).
	Exporter string `json:"exporter,omitempty" yaml:"exporter,omitempty"`
	// Endpoint is the OTLP collector endpoint.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// Insecure disables transport security for OTLP.
	Insecure bool `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	// SampleRatio is the trace sampling ratio (0.0 to 1.0).
	SampleRatio float64 `json:"sample_ratio,omitempty" yaml:"sample_ratio,omitempty"`
	// Environment is the deployment environment reported on spans.
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "usda-postgres",
		Version: "1.0",
		Server: ServerConfig{
			Transport: "stdio",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "usda",
			User:            "postgres",
			SSLMode:         "disable",
			MaxConns:        4,
			MinConns:        0,
			MaxConnLifetime: Duration(time.Hour),
			MaxConnIdleTime: Duration(30 * time.Minute),
			ConnectTimeout:  Duration(10 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Exporter:    "stdout",
			SampleRatio: 1.0,
		},
	}
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	// Handle null
	if string(b) == "null" {
		return nil
	}

	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	// Parse duration
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
