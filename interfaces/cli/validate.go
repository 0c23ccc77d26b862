package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nutridb/usda-mcp/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	envFile    string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a server configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Transport and listen address
  - Database connection settings and pool sizes
  - Logging and telemetry settings
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  usda-mcp validate -c config.yaml

  # Strict validation (fail on missing env vars)
  usda-mcp validate -c config.yaml --strict

  # Show the JSON schema for configuration
  usda-mcp validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path to .env file (ignored when absent)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for configuration")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	if opts.envFile != "" {
		_ = godotenv.Load(opts.envFile)
	}

	// Create loader with appropriate options
	loaderOpts := []config.LoaderOption{
		config.WithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, config.WithStrictEnv(true))
	}

	loader := config.NewLoaderWithOptions(loaderOpts...)
	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional validation via the builder
	result, err := config.NewBuilder(cfg).Build()
	if err != nil {
		return fmt.Errorf("configuration build failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", cfg.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", cfg.Version)
	if cfg.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", cfg.Description)
	}

	// Summary
	fmt.Fprintf(a.stdout, "\nConfiguration summary:\n")
	fmt.Fprintf(a.stdout, "  Transport: %s\n", result.Transport)
	if result.Transport == "http" {
		fmt.Fprintf(a.stdout, "  Address: %s\n", result.Addr)
	}
	fmt.Fprintf(a.stdout, "  Database: %s\n", result.Postgres.Redacted())
	fmt.Fprintf(a.stdout, "  Pool: %d-%d connections\n", result.Postgres.MinConns, result.Postgres.MaxConns)
	fmt.Fprintf(a.stdout, "  Log level: %s\n", result.Logging.Level)
	if result.Telemetry.Tracing.Enabled {
		fmt.Fprintf(a.stdout, "  Tracing: %s", result.Telemetry.Tracing.Exporter)
		if result.Telemetry.Tracing.Endpoint != "" {
			fmt.Fprintf(a.stdout, " (%s)", result.Telemetry.Tracing.Endpoint)
		}
		fmt.Fprintf(a.stdout, "\n")
	}

	return nil
}

// showConfigSchema displays the JSON schema for configuration.
func (a *App) showConfigSchema() error {
	schemaJSON, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
