package config

import (
	"encoding/json"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	MaxLength            *int                   `json:"maxLength,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Format               string                 `json:"format,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Definitions          map[string]*JSONSchema `json:"$defs,omitempty"`
	OneOf                []*JSONSchema          `json:"oneOf,omitempty"`
	AnyOf                []*JSONSchema          `json:"anyOf,omitempty"`
	AllOf                []*JSONSchema          `json:"allOf,omitempty"`
}

// GenerateSchema generates a JSON Schema for the server Config.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/nutridb/usda-mcp/config.schema.json",
		Title:       "USDA MCP Server Configuration",
		Description: "Configuration schema for the usda-mcp server",
		Type:        "object",
		Required:    []string{"name", "version", "database"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "A human-readable name for this configuration",
			},
			"version": {
				Type:        "string",
				Description: "The configuration schema version",
				Default:     "1.0",
			},
			"description": {
				Type:        "string",
				Description: "Describes the server's purpose",
			},
			"server":    generateServerSchema(),
			"database":  generateDatabaseSchema(),
			"logging":   generateLoggingSchema(),
			"telemetry": generateTelemetrySchema(),
		},
	}
}

func generateServerSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "MCP transport settings",
		Properties: map[string]*JSONSchema{
			"transport": {
				Type:        "string",
				Description: "How the server listens",
				Enum:        []string{"stdio", "http"},
				Default:     "stdio",
			},
			"addr": {
				Type:        "string",
				Description: "Listen address for the http transport",
			},
			"instructions": {
				Type:        "string",
				Description: "Overrides the usage instructions sent to clients",
			},
		},
	}
}

func generateDatabaseSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "PostgreSQL connection settings",
		Required:    []string{"host", "database", "user"},
		Properties: map[string]*JSONSchema{
			"host": {
				Type:        "string",
				Description: "Database server host",
			},
			"port": {
				Type:        "integer",
				Description: "Database server port",
				Default:     5432,
				Minimum:     floatPtr(1),
				Maximum:     floatPtr(65535),
			},
			"database": {
				Type:        "string",
				Description: "Database name",
			},
			"user": {
				Type:        "string",
				Description: "Database user",
			},
			"password": {
				Type:        "string",
				Description: "Database password (use ${VAR} expansion)",
			},
			"ssl_mode": {
				Type:        "string",
				Description: "PostgreSQL sslmode setting",
				Enum:        []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"},
				Default:     "disable",
			},
			"max_conns": {
				Type:        "integer",
				Description: "Maximum pool size",
				Minimum:     floatPtr(0),
			},
			"min_conns": {
				Type:        "integer",
				Description: "Minimum pool size",
				Minimum:     floatPtr(0),
			},
			"max_conn_lifetime": {
				Type:        "string",
				Description: "Maximum lifetime of a pooled connection (e.g., '1h')",
				Format:      "duration",
			},
			"max_conn_idle_time": {
				Type:        "string",
				Description: "Maximum idle time of a pooled connection",
				Format:      "duration",
			},
			"connect_timeout": {
				Type:        "string",
				Description: "Connection establishment timeout",
				Format:      "duration",
			},
		},
	}
}

func generateLoggingSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Logging settings",
		Properties: map[string]*JSONSchema{
			"level": {
				Type:        "string",
				Description: "Minimum log level",
				Enum:        []string{"trace", "debug", "info", "warn", "error"},
				Default:     "info",
			},
			"format": {
				Type:        "string",
				Description: "Output format",
				Enum:        []string{"json", "console"},
				Default:     "json",
			},
		},
	}
}

func generateTelemetrySchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Tracing and metrics settings",
		Properties: map[string]*JSONSchema{
			"enabled": {
				Type:        "boolean",
				Description: "Enable OpenTelemetry tracing",
				Default:     false,
			},
			"exporter": {
				Type:        "string",
				Description: "Span exporter",
				Enum:        []string{"stdout", "otlp", "none"},
				Default:     "stdout",
			},
			"endpoint": {
				Type:        "string",
				Description: "OTLP collector endpoint",
			},
			"insecure": {
				Type:        "boolean",
				Description: "Disable transport security for OTLP",
				Default:     false,
			},
			"sample_ratio": {
				Type:        "number",
				Description: "Trace sampling ratio",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(1),
				Default:     1.0,
			},
			"environment": {
				Type:        "string",
				Description: "Deployment environment reported on spans",
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// SchemaJSON returns the JSON Schema as a JSON string.
func SchemaJSON() (string, error) {
	schema := GenerateSchema()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
