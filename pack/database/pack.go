// Package database provides schema introspection and raw SQL tools for
// trusted callers.
package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nutridb/usda-mcp/domain/pack"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/domain/render"
	"github.com/nutridb/usda-mcp/domain/tool"
)

// New creates the database pack.
func New(runner query.Runner) (*pack.Pack, error) {
	if runner == nil {
		return nil, errors.New("query runner is required")
	}

	return pack.NewBuilder("database").
		WithDescription("Schema introspection and raw SQL access").
		WithVersion("1.0.0").
		AddTools(
			executeQueryTool(runner),
			listTablesTool(runner),
			describeTableTool(runner),
			tableSampleTool(runner),
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

var (
	tableLayout = render.Layout{Fields: []render.Field{
		{Column: "table_name", Label: "Table"},
	}}

	columnLayout = render.Layout{Fields: []render.Field{
		{Column: "column_name", Label: "Column"},
		{Column: "data_type", Label: "Type"},
		{Column: "is_nullable", Label: "Nullable"},
		{Column: "column_default", Label: "Default"},
	}}
)

// executeArgs is the input for the execute_query tool.
type executeArgs struct {
	Query  string `json:"query"`
	Params []any  `json:"params,omitempty"`
}

func executeQueryTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"query":  json.RawMessage(`{"type":"string","description":"SQL statement to run verbatim"}`),
		"params": json.RawMessage(`{"type":"array","description":"Values bound to $1..$n placeholders in the statement"}`),
	}, []string{"query"})

	return tool.NewBuilder(query.OpRawQuery).
		WithDescription("Execute a SQL statement with optional bound parameters. The statement runs verbatim; results render in result-set column order.").
		WithInputSchema(schema).
		WithRiskLevel(tool.RiskHigh).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args executeArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.RawQuery(args.Query, args.Params)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Columns(res), len(res.Rows)), nil
		}).
		MustBuild()
}

func listTablesTool(runner query.Runner) tool.Tool {
	return tool.NewBuilder(query.OpListTables).
		WithDescription("List the base tables of the public schema.").
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			res, err := runner.Query(ctx, query.ListTables())
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, tableLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

// describeArgs is the input for the describe_table tool.
type describeArgs struct {
	TableName string `json:"table_name"`
}

func describeTableTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"table_name": json.RawMessage(`{"type":"string","description":"Name of the table to describe"}`),
	}, []string{"table_name"})

	return tool.NewBuilder(query.OpDescribeTable).
		WithDescription("Describe one table's columns: name, data type, nullability, and default, in ordinal position order.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args describeArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.DescribeTable(args.TableName)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Rows(res, columnLayout), len(res.Rows)), nil
		}).
		MustBuild()
}

// sampleArgs is the input for the get_table_sample tool.
type sampleArgs struct {
	TableName string `json:"table_name"`
	Limit     int    `json:"limit,omitempty"`
}

func tableSampleTool(runner query.Runner) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"table_name": json.RawMessage(`{"type":"string","description":"Name of the table to sample; must be a plain identifier"}`),
		"limit":      json.RawMessage(`{"type":"integer","description":"Number of rows to return (default 10, capped at 200)"}`),
	}, []string{"table_name"})

	return tool.NewBuilder(query.OpTableSample).
		WithDescription("Read the first rows of a table, rendered in column order.").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var args sampleArgs
			if err := decodeArgs(input, &args); err != nil {
				return tool.Result{}, err
			}

			stmt, err := query.TableSample(args.TableName, args.Limit)
			if err != nil {
				return tool.Result{}, err
			}

			res, err := runner.Query(ctx, stmt)
			if err != nil {
				return tool.Result{}, err
			}
			return tool.NewRowsResult(render.Columns(res), len(res.Rows)), nil
		}).
		MustBuild()
}
