package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutridb/usda-mcp/domain/pack"
	"github.com/nutridb/usda-mcp/infrastructure/postgres"
	"github.com/nutridb/usda-mcp/pack/database"
	"github.com/nutridb/usda-mcp/pack/foods"
)

// toolsOptions holds options for the tools command.
type toolsOptions struct {
	verbose bool
}

// newToolsCmd creates the tools command.
func (a *App) newToolsCmd() *cobra.Command {
	opts := &toolsOptions{}

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Long: `List every tool the MCP server announces to clients, grouped by pack.

The tool set is fixed at build time, so this command never touches the
database.

Examples:
  # List tool names by pack
  usda-mcp tools

  # Include descriptions and annotations
  usda-mcp tools -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTools(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show descriptions and annotations")

	return cmd
}

// listTools prints the tool packs and their tools.
func (a *App) listTools(opts *toolsOptions) error {
	// The executor connects lazily on first query, so building the
	// packs here never opens a connection.
	executor := postgres.NewExecutor(postgres.DefaultConfig())
	defer executor.Close()

	foodsPack, err := foods.New(executor)
	if err != nil {
		return fmt.Errorf("failed to build foods pack: %w", err)
	}
	databasePack, err := database.New(executor)
	if err != nil {
		return fmt.Errorf("failed to build database pack: %w", err)
	}

	packs := []*pack.Pack{foodsPack, databasePack}

	total := 0
	for _, p := range packs {
		total += len(p.Tools)
	}
	_, _ = fmt.Fprintf(a.stdout, "Tool Packs (%d packs, %d tools):\n", len(packs), total)

	for _, p := range packs {
		_, _ = fmt.Fprintf(a.stdout, "\n  %s", p.Name)
		if p.Version != "" {
			_, _ = fmt.Fprintf(a.stdout, " (v%s)", p.Version)
		}
		_, _ = fmt.Fprintf(a.stdout, "\n")
		if p.Description != "" {
			_, _ = fmt.Fprintf(a.stdout, "    %s\n", p.Description)
		}

		for _, t := range p.Tools {
			_, _ = fmt.Fprintf(a.stdout, "\n    %s\n", t.Name())
			if !opts.verbose {
				continue
			}
			if t.Description() != "" {
				_, _ = fmt.Fprintf(a.stdout, "      %s\n", t.Description())
			}
			ann := t.Annotations()
			if ann.ReadOnly {
				_, _ = fmt.Fprintf(a.stdout, "      ReadOnly: true\n")
			}
			if ann.Destructive {
				_, _ = fmt.Fprintf(a.stdout, "      Destructive: true\n")
			}
			if ann.Idempotent {
				_, _ = fmt.Fprintf(a.stdout, "      Idempotent: true\n")
			}
			if ann.Cacheable {
				_, _ = fmt.Fprintf(a.stdout, "      Cacheable: true\n")
			}
			_, _ = fmt.Fprintf(a.stdout, "      Risk level: %s\n", ann.RiskLevel)
		}
	}

	return nil
}
