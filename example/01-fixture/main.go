// Package main demonstrates invoking the nutrition tools against an
// in-memory fixture instead of a live PostgreSQL database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/domain/tool"
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
	// 1. Load a runner with a few foods from the Standard Reference.
	runner := &fixtureRunner{results: map[string]query.Result{
		query.OpSearchFoods: {
			Columns: []string{"ndb_no", "long_desc", "shrt_desc", "food_group"},
			Rows: []query.Row{
				{"ndb_no": "01009", "long_desc": "Cheese, cheddar", "shrt_desc": "CHEESE,CHEDDAR", "food_group": "Dairy and Egg Products"},
				{"ndb_no": "01011", "long_desc": "Cheese, colby", "shrt_desc": "CHEESE,COLBY", "food_group": "Dairy and Egg Products"},
			},
		},
		query.OpNutritionProfile: {
			Columns: []string{"long_desc", "food_group", "nutrdesc", "nutr_val", "units"},
			Rows: []query.Row{
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Energy", "nutr_val": 403.0, "units": "kcal"},
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Protein", "nutr_val": 24.9, "units": "g"},
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Total lipid (fat)", "nutr_val": 33.14, "units": "g"},
				{"long_desc": "Cheese, cheddar", "food_group": "Dairy and Egg Products", "nutrdesc": "Carbohydrate, by difference", "nutr_val": 1.28, "units": "g"},
			},
		},
	}}

	// 2. Build the foods pack against the fixture and install its tools.
	foodsPack, err := foods.New(runner)
	if err != nil {
		log.Fatal(err)
	}

	registry := memory.NewToolRegistry()
	if err := infrapack.NewRegistry().InstallPack(foodsPack, registry); err != nil {
		log.Fatal(err)
	}

	// 3. Wrap execution in the same validation middleware the server runs.
	invoke := middleware.Chain(
		inframw.Validation(inframw.DefaultValidationConfig()),
	)(func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
		return execCtx.Tool.Execute(ctx, execCtx.Input)
	})

	call := func(name, args string) (tool.Result, error) {
		t, ok := registry.Get(name)
		if !ok {
			log.Fatalf("tool %s not registered", name)
		}
		return invoke(context.Background(), &middleware.ExecutionContext{
			InvocationID: name,
			Tool:         t,
			Input:        json.RawMessage(args),
		})
	}

	// 4. Invoke two tools and print the rendered text an assistant would see.
	res, err := call("search_foods", `{"keyword":"cheddar"}`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("=== search_foods ===")
	fmt.Println(res.Output)
	fmt.Println()

	res, err = call("get_nutrition_profile", `{"ndb_no":"01009"}`)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("=== get_nutrition_profile ===")
	fmt.Println(res.Output)
	fmt.Println()

	// 5. Bad arguments are rejected before any query runs.
	_, err = call("search_foods", `{"keyword":"cheese","limit":-5}`)
	fmt.Println("=== search_foods with a negative limit ===")
	fmt.Printf("rejected: %v\n", err)
}
