// Package main demonstrates serving the nutrition tools over MCP stdio
// without a database. Point an MCP client at the process to browse the
// built-in sample; press Ctrl-D to exit.
package main

import (
	"context"
	"log"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/infrastructure/mcp"
	inframw "github.com/nutridb/usda-mcp/infrastructure/middleware"
	infrapack "github.com/nutridb/usda-mcp/infrastructure/pack"
	"github.com/nutridb/usda-mcp/infrastructure/storage/memory"
	"github.com/nutridb/usda-mcp/pack/foods"
)

// fixtureRunner serves canned Standard Reference rows keyed by operation
// name. It stands in for the PostgreSQL executor.
type fixtureRunner struct {
	results map[string]query.Result
}

func (f *fixtureRunner) Query(_ context.Context, stmt query.Statement) (query.Result, error) {
	return f.results[stmt.Op], nil
}

func main() {
	// 1. Load a runner with one food from the Standard Reference.
	runner := &fixtureRunner{results: map[string]query.Result{
		query.OpSearchFoods: {
			Columns: []string{"ndb_no", "long_desc", "shrt_desc", "food_group"},
			Rows: []query.Row{
				{"ndb_no": "01009", "long_desc": "Cheese, cheddar", "shrt_desc": "CHEESE,CHEDDAR", "food_group": "Dairy and Egg Products"},
			},
		},
		query.OpNutritionProfile: {
			Columns: []string{"long_desc", "food_group", "nutrdesc", "nutr_val", "units"},
			Rows: []query.Row{
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Energy", "nutr_val": 403.0, "units": "kcal"},
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Protein", "nutr_val": 24.9, "units": "g"},
			},
		},
	}}

	// 2. Install the foods pack into a tool registry.
	foodsPack, err := foods.New(runner)
	if err != nil {
		log.Fatal(err)
	}

	registry := memory.NewToolRegistry()
	if err := infrapack.NewRegistry().InstallPack(foodsPack, registry); err != nil {
		log.Fatal(err)
	}

	// 3. Build the MCP server with input validation on every invocation.
	srv := mcp.NewToolServer(mcp.ToolServerConfig{
		Name:         "usda-mcp-fixture",
		Version:      "0.1.0",
		Description:  "USDA nutrition tools backed by a built-in sample",
		Instructions: "Call search_foods to find a food, then get_nutrition_profile with its NDB number.",
		Registry:     registry,
		Middleware: []middleware.Middleware{
			inframw.Validation(inframw.DefaultValidationConfig()),
		},
	})
	srv.Use(mcp.Recover(), mcp.RequestID())

	// 4. Serve. Stdout carries the protocol stream, so the banner goes to
	// stderr via the log package.
	log.Printf("serving %d tools over stdio", registry.Count())
	if err := srv.ServeStdio(context.Background()); err != nil {
		log.Fatal(err)
	}
}
