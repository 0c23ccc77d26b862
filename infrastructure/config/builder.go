package config

import (
	"fmt"
	"os"

	"github.com/nutridb/usda-mcp/infrastructure/logging"
	"github.com/nutridb/usda-mcp/infrastructure/postgres"
	"github.com/nutridb/usda-mcp/infrastructure/telemetry"
)

// Builder builds runtime component configurations from parsed
// configuration.
type Builder struct {
	config *Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder(config *Config) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the built components from configuration.
type BuildResult struct {
	// Logging is the logger configuration.
	Logging logging.Config
	// Postgres is the database pool configuration.
	Postgres postgres.Config
	// Telemetry is the telemetry provider configuration.
	Telemetry telemetry.Config
	// Transport is the MCP transport (stdio or http).
	Transport string
	// Addr is the listen address when Transport is http.
	Addr string
	// Instructions is the usage text announced to MCP clients.
	Instructions string
}

// Build maps the configuration onto component configurations.
func (b *Builder) Build() (*BuildResult, error) {
	result := &BuildResult{}

	b.buildServer(result)
	b.buildLogging(result)
	b.buildDatabase(result)
	if err := b.buildTelemetry(result); err != nil {
		return nil, fmt.Errorf("building telemetry: %w", err)
	}

	return result, nil
}

func (b *Builder) buildServer(result *BuildResult) {
	result.Transport = b.config.Server.Transport
	if result.Transport == "" {
		result.Transport = "stdio"
	}
	result.Addr = b.config.Server.Addr
	if result.Addr == "" {
		result.Addr = ":8080"
	}
	result.Instructions = b.config.Server.Instructions
}

func (b *Builder) buildLogging(result *BuildResult) {
	cfg := logging.ProductionConfig()
	if b.config.Logging.Level != "" {
		cfg.Level = b.config.Logging.Level
	}
	if b.config.Logging.Format != "" {
		cfg.Format = b.config.Logging.Format
	}
	// stdout carries the protocol in stdio mode; diagnostics go to stderr.
	cfg.Output = os.Stderr
	result.Logging = cfg
}

func (b *Builder) buildDatabase(result *BuildResult) {
	pg := postgres.DefaultConfig()
	db := b.config.Database

	if db.Host != "" {
		pg.Host = db.Host
	}
	if db.Port != 0 {
		pg.Port = db.Port
	}
	if db.Database != "" {
		pg.Database = db.Database
	}
	if db.User != "" {
		pg.User = db.User
	}
	pg.Password = db.Password
	if db.SSLMode != "" {
		pg.SSLMode = db.SSLMode
	}
	if db.MaxConns > 0 {
		pg.MaxConns = db.MaxConns
	}
	if db.MinConns > 0 {
		pg.MinConns = db.MinConns
	}
	if d := db.MaxConnLifetime.Duration(); d > 0 {
		pg.MaxConnLifetime = d
	}
	if d := db.MaxConnIdleTime.Duration(); d > 0 {
		pg.MaxConnIdleTime = d
	}
	if d := db.ConnectTimeout.Duration(); d > 0 {
		pg.ConnectTimeout = d
	}

	result.Postgres = pg
}

func (b *Builder) buildTelemetry(result *BuildResult) error {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceName = b.config.Name
	cfg.ServiceVersion = b.config.Version

	tel := b.config.Telemetry
	if tel.Environment != "" {
		cfg.Environment = tel.Environment
	}
	if !tel.Enabled {
		result.Telemetry = cfg
		return nil
	}

	exporter, err := parseExporter(tel.Exporter)
	if err != nil {
		return err
	}

	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = exporter
	cfg.Tracing.Endpoint = tel.Endpoint
	cfg.Tracing.Insecure = tel.Insecure
	if tel.SampleRatio > 0 {
		cfg.Tracing.SampleRatio = tel.SampleRatio
	}

	result.Telemetry = cfg
	return nil
}

func parseExporter(s string) (telemetry.ExporterType, error) {
	exporterMap := map[string]telemetry.ExporterType{
		"stdout": telemetry.ExporterStdout,
		"otlp":   telemetry.ExporterOTLP,
		"none":   telemetry.ExporterNone,
		"":       telemetry.ExporterNone,
	}
	exporter, ok := exporterMap[s]
	if !ok {
		return "", fmt.Errorf("unknown telemetry exporter: %s", s)
	}
	return exporter, nil
}
