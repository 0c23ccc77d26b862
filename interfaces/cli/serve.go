package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/infrastructure/config"
	"github.com/nutridb/usda-mcp/infrastructure/logging"
	"github.com/nutridb/usda-mcp/infrastructure/mcp"
	inframw "github.com/nutridb/usda-mcp/infrastructure/middleware"
	infrapack "github.com/nutridb/usda-mcp/infrastructure/pack"
	"github.com/nutridb/usda-mcp/infrastructure/postgres"
	"github.com/nutridb/usda-mcp/infrastructure/storage/memory"
	"github.com/nutridb/usda-mcp/infrastructure/telemetry"
	"github.com/nutridb/usda-mcp/pack/database"
	"github.com/nutridb/usda-mcp/pack/foods"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	configPath string
	envFile    string
	transport  string
	addr       string
	logLevel   string
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the nutrition database over MCP",
		Long: `Start the MCP server and expose the USDA nutrition tools to clients.

The server speaks the Model Context Protocol over stdio by default, which is
how desktop assistants launch it. With --transport http it listens on a TCP
address instead.

Database credentials come from the configuration file, with ${VAR} references
expanded from the environment. A .env file next to the working directory is
loaded first when present.

Examples:
  # Serve over stdio with defaults (localhost Postgres, database "usda")
  usda-mcp serve

  # Serve with a configuration file
  usda-mcp serve -c config.yaml

  # Serve over HTTP
  usda-mcp serve -c config.yaml --transport http --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path to .env file (ignored when absent)")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "MCP transport: stdio or http (overrides config)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address for http transport (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")

	return cmd
}

// serve wires the tool packs to the database and runs the MCP server.
func (a *App) serve(ctx context.Context, opts *serveOptions) error {
	result, cfg, err := a.loadConfig(opts.configPath, opts.envFile)
	if err != nil {
		return err
	}

	// CLI flags win over the file.
	if opts.transport != "" {
		result.Transport = opts.transport
	}
	if opts.addr != "" {
		result.Addr = opts.addr
	}
	if opts.logLevel != "" {
		result.Logging.Level = opts.logLevel
	}

	logging.Init(result.Logging)

	provider, err := telemetry.New(telemetry.WithConfig(result.Telemetry))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logging.Warn().Add(logging.ErrorField(err)).Msg("telemetry shutdown failed")
		}
	}()

	// The pool connects lazily on the first query, so startup succeeds
	// even while the database is still coming up.
	executor := postgres.NewExecutor(result.Postgres)
	defer executor.Close()

	registry, err := buildToolRegistry(executor)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig())
	if err := metrics.Error(); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	srv := mcp.NewToolServer(mcp.ToolServerConfig{
		Name:         cfg.Name,
		Version:      cfg.Version,
		Description:  cfg.Description,
		Instructions: result.Instructions,
		Registry:     registry,
		// Validation sits innermost so rejected inputs still show up
		// in the span, the log line, and the error metrics.
		Middleware: []middleware.Middleware{
			inframw.NewTracing(inframw.WithTracer(provider.Tracer())),
			inframw.Logging(inframw.LoggingConfig{}),
			inframw.Metrics(inframw.MetricsConfig{Provider: metrics}),
			inframw.Validation(inframw.DefaultValidationConfig()),
		},
	})
	srv.Use(mcp.Recover(), mcp.RequestID())

	logging.Info().
		Add(logging.Transport(result.Transport)).
		Add(logging.Str("database", result.Postgres.Redacted())).
		Add(logging.Int("tools", registry.Count())).
		Msg("starting MCP server")

	switch result.Transport {
	case "stdio":
		return srv.ServeStdio(ctx)
	case "http":
		return srv.ServeHTTP(ctx, result.Addr)
	default:
		return fmt.Errorf("unknown transport: %s", result.Transport)
	}
}

// loadConfig loads the .env file and configuration, falling back to
// defaults when no file is given.
func (a *App) loadConfig(configPath, envFile string) (*config.BuildResult, *config.Config, error) {
	if envFile != "" {
		// Missing .env files are fine; credentials often come from the
		// real environment instead.
		_ = godotenv.Load(envFile)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loader := config.NewLoader()
		loaded, err := loader.LoadFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	result, err := config.NewBuilder(cfg).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build configuration: %w", err)
	}
	return result, cfg, nil
}

// buildToolRegistry installs the foods and database packs into a fresh
// tool registry backed by the given runner.
func buildToolRegistry(executor *postgres.Executor) (*memory.ToolRegistry, error) {
	foodsPack, err := foods.New(executor)
	if err != nil {
		return nil, fmt.Errorf("failed to build foods pack: %w", err)
	}
	databasePack, err := database.New(executor)
	if err != nil {
		return nil, fmt.Errorf("failed to build database pack: %w", err)
	}

	packs := infrapack.NewRegistry()
	if err := packs.Register(foodsPack); err != nil {
		return nil, fmt.Errorf("failed to register foods pack: %w", err)
	}
	if err := packs.Register(databasePack); err != nil {
		return nil, fmt.Errorf("failed to register database pack: %w", err)
	}

	registry := memory.NewToolRegistry()
	for _, p := range packs.List() {
		if err := packs.InstallPack(p, registry); err != nil {
			return nil, fmt.Errorf("failed to install pack %s: %w", p.Name, err)
		}
	}
	return registry, nil
}
