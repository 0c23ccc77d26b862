// Package foods provides the nutrition lookup tools backed by the USDA
// Standard Reference tables.
package foods

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nutridb/usda-mcp/domain/pack"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/domain/render"
	"github.com/nutridb/usda-mcp/domain/tool"
)

// New creates the foods pack. Every tool reads through runner; constructing
// the pack never touches the database.
func New(runner query.Runner) (*pack.Pack, error) {
	if runner == nil {
		return nil, errors.New("query runner is required")
	}

	return pack.NewBuilder("foods").
		WithDescription("USDA Standard Reference nutrition lookups").
		WithVersion("1.0.0").
		AddTools(
			searchFoodsTool(runner),
			nutritionProfileTool(runner),
			foodsByCategoryTool(runner),
			foodCategoriesTool(runner),
			topByNutrientTool(runner),
			compareFoodsTool(runner),
			dataSourcesTool(runner),
		).
		Build(), nil
}

// decodeArgs unmarshals the argument bag into a typed struct. A bag that does
// not decode is an argument error, not an internal one.
func decodeArgs(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return &query.ValidationError{Field: "arguments", Reason: err.Error()}
	}
	return nil
}

// Shared layouts. Every food row renders with the same field order so
// responses read the same across tools.
var (
	foodLayout = render.Layout{Fields: []render.Field{
		{Column: "long_desc", Label: "Food"},
		{Column: "ndb_no", Label: "NDB number"},
		{Column: "shrt_desc", Label: "Short description"},
		{Column: "food_group", Label: "Category"},
	}}

	categoryLayout = render.Layout{Fields: []render.Field{
		{Column: "fddrp_desc", Label: "Category"},
		{Column: "fdgrp_cd", Label: "Code"},
		{Column: "food_count", Label: "Foods"},
	}}

	rankedLayout = render.Layout{Fields: []render.Field{
		{Column: "long_desc", Label: "Food"},
		{Column: "ndb_no", Label: "NDB number"},
		{Column: "food_group", Label: "Category"},
		{Column: "nutrdesc", Label: "Nutrient"},
		{Column: "nutr_val", Label: "Amount", UnitColumn: "units"},
	}}

	nutrientDetail = render.Layout{Fields: []render.Field{
		{Column: "nutrdesc", Label: "Nutrient"},
		{Column: "nutr_val", Label: "Amount", UnitColumn: "units"},
	}}

	sourceLayout = render.Layout{Fields: []render.Field{
		{Column: "title", Label: "Title"},
		{Column: "authors", Label: "Authors"},
		{Column: "year", Label: "Year"},
	}}
)

// searchArgs is the input for the search_foods tool.
type searchArgs struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit,omitempty"`
}

func searchFoodsTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"keyword": json.RawMessage(`{"type":"string","description":"Substring to match against food descriptions, case-insensitive"}`),
		"limit":   json.RawMessage(`{"type":"integer","description":"Maximum rows to return (default 20, capped at 200)"}`),
	}, []string{"keyword"})

	return tool.NewBuilder(query.OpSearchFoods).
		WithDescription("Search foods by keyword. Matches case-insensitively against long and short food descriptions and returns matching foods with their category.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args searchArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.SearchFoods(args.Keyword, args.Limit)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, foodLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

// profileArgs is the input for the get_nutrition_profile tool.
type profileArgs struct {
	NDBNo string `json:"ndb_no"`
}

func nutritionProfileTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"ndb_no": json.RawMessage(`{"type":"string","description":"USDA food database number (NDB number)"}`),
	}, []string{"ndb_no"})

	return tool.NewBuilder(query.OpNutritionProfile).
		WithDescription("Get the complete nutrition profile for one food by its NDB number. Returns every stored nutrient with a positive value, in standard report order.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args profileArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.NutritionProfile(args.NDBNo)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Grouped(res, []string{"long_desc", "food_group"}, nutrientDetail), len(res.Rows)), nil
		}).
		MustBuild()
}

// byCategoryArgs is the input for the get_foods_by_category tool.
type byCategoryArgs struct {
	Category string `json:"category"`
	Limit    int    `json:"limit,omitempty"`
}

func foodsByCategoryTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"category": json.RawMessage(`{"type":"string","description":"Food category name, matched case-insensitively as a substring"}`),
		"limit":    json.RawMessage(`{"type":"integer","description":"Maximum rows to return (default 50, capped at 200)"}`),
	}, []string{"category"})

	return tool.NewBuilder(query.OpFoodsByCategory).
		WithDescription("List foods belonging to a food category. The category name matches case-insensitively as a substring.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args byCategoryArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.FoodsByCategory(args.Category, args.Limit)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, foodLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

func foodCategoriesTool(runner query.Runner) tool.Tool {
	return tool.NewBuilder(query.OpFoodCategories).
		WithDescription("List every food category with the number of foods it contains, including empty categories.").
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			res, err := runner.Query(ctx, query.FoodCategories())
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, categoryLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

// topNutrientArgs is the input for the find_foods_high_in_nutrient tool.
type topNutrientArgs struct {
	Nutrient string `json:"nutrient"`
	Limit    int    `json:"limit,omitempty"`
}

func topByNutrientTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"nutrient": json.RawMessage(`{"type":"string","description":"Nutrient name, matched case-insensitively as a substring (e.g. \"Protein\", \"Vitamin C\")"}`),
		"limit":    json.RawMessage(`{"type":"integer","description":"Maximum rows to return (default 20, capped at 200)"}`),
	}, []string{"nutrient"})

	return tool.NewBuilder(query.OpTopByNutrient).
		WithDescription("Find the foods highest in a nutrient, ranked by value descending. The nutrient name matches as a substring; when several nutrient definitions match, all of them rank together in one list.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args topNutrientArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.TopFoodsByNutrient(args.Nutrient, args.Limit)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, rankedLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

// compareArgs is the input for the compare_foods_nutrition tool.
type compareArgs struct {
	NDBNumbers []string `json:"ndb_numbers"`
	Nutrients  []string `json:"nutrients,omitempty"`
}

func compareFoodsTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"ndb_numbers": json.RawMessage(`{"type":"array","items":{"type":"string"},"description":"NDB numbers of the foods to compare; at least two distinct values"}`),
		"nutrients":   json.RawMessage(`{"type":"array","items":{"type":"string"},"description":"Exact nutrient names to compare; defaults to Energy, Protein, Total lipid (fat), and Carbohydrate, by difference"}`),
	}, []string{"ndb_numbers"})

	return tool.NewBuilder(query.OpCompareFoods).
		WithDescription("Compare nutrition values across two or more foods, grouped per food. Nutrient names must match exactly; when omitted, the key macronutrients are compared.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args compareArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.CompareFoods(args.NDBNumbers, args.Nutrients)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Grouped(res, []string{"long_desc", "ndb_no"}, nutrientDetail), len(res.Rows)), nil
		}).
		MustBuild()
}

// sourcesArgs is the input for the get_data_sources tool.
type sourcesArgs struct {
	NDBNo string `json:"ndb_no"`
	Limit int    `json:"limit,omitempty"`
}

func dataSourcesTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"ndb_no": json.RawMessage(`{"type":"string","description":"USDA food database number (NDB number)"}`),
		"limit":  json.RawMessage(`{"type":"integer","description":"Maximum citations to return (default 20, capped at 200)"}`),
	}, []string{"ndb_no"})

	return tool.NewBuilder(query.OpDataSources).
		WithDescription("List the distinct published citations backing a food's nutrient values, ordered by title.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args sourcesArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.FoodDataSources(args.NDBNo, args.Limit)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, sourceLayout), len(res.Rows)), nil
		}).
		MustBuild()
}
