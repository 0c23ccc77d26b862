package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates server configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *Config) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validateServer(config)
	v.validateDatabase(config)
	v.validateLogging(config)
	v.validateTelemetry(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *Config) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validateServer(config *Config) {
	if config.Server.Transport != "" {
		validTransports := map[string]bool{
			"stdio": true, "http": true,
		}
		if !validTransports[config.Server.Transport] {
			v.addError("server.transport", fmt.Sprintf("invalid transport: %s", config.Server.Transport))
		}
	}
	if config.Server.Transport == "http" && config.Server.Addr == "" {
		v.addError("server.addr", "addr is required for http transport")
	}
}

func (v *Validator) validateDatabase(config *Config) {
	if config.Database.Host == "" {
		v.addError("database.host", "host is required")
	}
	if config.Database.Database == "" {
		v.addError("database.database", "database name is required")
	}
	if config.Database.User == "" {
		v.addError("database.user", "user is required")
	}
	if config.Database.Port < 0 || config.Database.Port > 65535 {
		v.addError("database.port", fmt.Sprintf("invalid port: %d", config.Database.Port))
	}

	if config.Database.SSLMode != "" {
		validModes := map[string]bool{
			"disable": true, "allow": true, "prefer": true,
			"require": true, "verify-ca": true, "verify-full": true,
		}
		if !validModes[config.Database.SSLMode] {
			v.addError("database.ssl_mode", fmt.Sprintf("invalid ssl_mode: %s", config.Database.SSLMode))
		}
	}

	if config.Database.MaxConns < 0 {
		v.addError("database.max_conns", "max_conns must be non-negative")
	}
	if config.Database.MinConns < 0 {
		v.addError("database.min_conns", "min_conns must be non-negative")
	}
	if config.Database.MaxConns > 0 && config.Database.MinConns > config.Database.MaxConns {
		v.addError("database.min_conns", "min_conns must not exceed max_conns")
	}
}

func (v *Validator) validateLogging(config *Config) {
	if config.Logging.Level != "" {
		validLevels := map[string]bool{
			"trace": true, "debug": true, "info": true, "warn": true, "error": true,
		}
		if !validLevels[strings.ToLower(config.Logging.Level)] {
			v.addError("logging.level", fmt.Sprintf("invalid level: %s", config.Logging.Level))
		}
	}
	if config.Logging.Format != "" {
		validFormats := map[string]bool{
			"json": true, "console": true,
		}
		if !validFormats[strings.ToLower(config.Logging.Format)] {
			v.addError("logging.format", fmt.Sprintf("invalid format: %s", config.Logging.Format))
		}
	}
}

func (v *Validator) validateTelemetry(config *Config) {
	if !config.Telemetry.Enabled {
		return
	}

	if config.Telemetry.Exporter != "" {
		validExporters := map[string]bool{
			"stdout": true, "otlp": true, "none": true,
		}
		if !validExporters[config.Telemetry.Exporter] {
			v.addError("telemetry.exporter", fmt.Sprintf("invalid exporter: %s", config.Telemetry.Exporter))
		}
	}
	if config.Telemetry.Exporter == "otlp" && config.Telemetry.Endpoint == "" {
		v.addError("telemetry.endpoint", "endpoint is required for otlp exporter")
	}
	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		v.addError("telemetry.sample_ratio", "sample_ratio must be between 0 and 1")
	}
}
