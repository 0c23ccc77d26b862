package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nutridb/usda-mcp/domain/nutrition"
)

// Operation names. They double as the MCP tool names.
const (
	OpSearchFoods      = "search_foods"
	OpNutritionProfile = "get_nutrition_profile"
	OpFoodsByCategory  = "get_foods_by_category"
	OpFoodCategories   = "get_food_categories"
	OpTopByNutrient    = "find_foods_high_in_nutrient"
	OpCompareFoods     = "compare_foods_nutrition"
	OpDataSources      = "get_data_sources"
	OpListTables       = "list_tables"
	OpDescribeTable    = "describe_table"
	OpTableSample      = "get_table_sample"
	OpRawQuery         = "execute_query"
)

// Limit defaults per operation and the shared cap.
const (
	DefaultSearchLimit   = 20
	DefaultCategoryLimit = 50
	DefaultTopLimit      = 20
	DefaultSourcesLimit  = 20
	DefaultSampleLimit   = 10
	MaxLimit             = 200
)

var searchFoodsSQL = fmt.Sprintf(`
SELECT fd.ndb_no, fd.long_desc, fd.shrt_desc, fg.fddrp_desc AS food_group
FROM %s fd
JOIN %s fg ON %s
WHERE fd.long_desc ILIKE $1 OR fd.shrt_desc ILIKE $1
ORDER BY fd.long_desc
LIMIT $2`,
	nutrition.TableFoods, nutrition.TableCategories, nutrition.JoinFoodCategory)

var nutritionProfileSQL = fmt.Sprintf(`
SELECT fd.long_desc, fd.shrt_desc, fg.fddrp_desc AS food_group,
       nd.nutrdesc, n.nutr_val, nd.units
FROM %s fd
JOIN %s fg ON %s
JOIN %s n ON %s
JOIN %s nd ON %s
WHERE fd.ndb_no = $1 AND n.nutr_val > 0
ORDER BY nd.sr_order`,
	nutrition.TableFoods, nutrition.TableCategories, nutrition.JoinFoodCategory,
	nutrition.TableNutrientValues, nutrition.JoinFoodValue,
	nutrition.TableNutrientDefs, nutrition.JoinValueNutrient)

var foodsByCategorySQL = fmt.Sprintf(`
SELECT fd.ndb_no, fd.long_desc, fd.shrt_desc, fg.fddrp_desc AS food_group
FROM %s fd
JOIN %s fg ON %s
WHERE fg.fddrp_desc ILIKE $1
ORDER BY fd.long_desc
LIMIT $2`,
	nutrition.TableFoods, nutrition.TableCategories, nutrition.JoinFoodCategory)

var foodCategoriesSQL = fmt.Sprintf(`
SELECT fg.fdgrp_cd, fg.fddrp_desc, COUNT(fd.ndb_no) AS food_count
FROM %s fg
LEFT JOIN %s fd ON %s
GROUP BY fg.fdgrp_cd, fg.fddrp_desc
ORDER BY food_count DESC, fg.fddrp_desc`,
	nutrition.TableCategories, nutrition.TableFoods, nutrition.JoinFoodCategory)

var topByNutrientSQL = fmt.Sprintf(`
SELECT fd.ndb_no, fd.long_desc, fg.fddrp_desc AS food_group,
       nd.nutrdesc, n.nutr_val, nd.units
FROM %s fd
JOIN %s fg ON %s
JOIN %s n ON %s
JOIN %s nd ON %s
WHERE nd.nutrdesc ILIKE $1 AND n.nutr_val > 0
ORDER BY n.nutr_val DESC
LIMIT $2`,
	nutrition.TableFoods, nutrition.TableCategories, nutrition.JoinFoodCategory,
	nutrition.TableNutrientValues, nutrition.JoinFoodValue,
	nutrition.TableNutrientDefs, nutrition.JoinValueNutrient)

var compareFoodsSQL = fmt.Sprintf(`
SELECT fd.ndb_no, fd.long_desc, nd.nutrdesc, n.nutr_val, nd.units
FROM %s fd
JOIN %s n ON %s
JOIN %s nd ON %s
WHERE fd.ndb_no = ANY($1) AND nd.nutrdesc = ANY($2)
ORDER BY fd.long_desc, nd.sr_order`,
	nutrition.TableFoods,
	nutrition.TableNutrientValues, nutrition.JoinFoodValue,
	nutrition.TableNutrientDefs, nutrition.JoinValueNutrient)

var dataSourcesSQL = fmt.Sprintf(`
SELECT DISTINCT ds.authors, ds.title, ds.year
FROM %s dl
JOIN %s ds ON %s
WHERE dl.ndb_no = $1
ORDER BY ds.title
LIMIT $2`,
	nutrition.TableDataSourceLinks, nutrition.TableDataSources, nutrition.JoinLinkSource)

const listTablesSQL = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
ORDER BY table_name`

const describeTableSQL = `
SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = $1
ORDER BY ordinal_position`

// likeEscaper neutralizes LIKE wildcards so caller input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern escapes s and wraps it for a substring match. The wrapping
// happens here so callers never pass pattern syntax of their own.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// clampLimit applies the shared limit rules: zero means the operation
// default, negative values are rejected, values above MaxLimit are capped.
func clampLimit(limit, def int) (int, error) {
	switch {
	case limit == 0:
		return def, nil
	case limit < 0:
		return 0, &ValidationError{Field: "limit", Reason: "must be a positive integer"}
	case limit > MaxLimit:
		return MaxLimit, nil
	}
	return limit, nil
}

func requireNonEmpty(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return value, nil
}

// SearchFoods matches keyword case-insensitively against both food
// descriptions, ordered by long description.
func SearchFoods(keyword string, limit int) (Statement, error) {
	keyword, err := requireNonEmpty("keyword", keyword)
	if err != nil {
		return Statement{}, err
	}
	n, err := clampLimit(limit, DefaultSearchLimit)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpSearchFoods, SQL: searchFoodsSQL, Args: []any{containsPattern(keyword), n}}, nil
}

// NutritionProfile returns every positive nutrient value stored for one
// food, in nutrient display order.
func NutritionProfile(foodCode string) (Statement, error) {
	foodCode, err := requireNonEmpty("ndb_no", foodCode)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpNutritionProfile, SQL: nutritionProfileSQL, Args: []any{foodCode}}, nil
}

// FoodsByCategory lists foods whose category name matches the pattern.
func FoodsByCategory(category string, limit int) (Statement, error) {
	category, err := requireNonEmpty("category", category)
	if err != nil {
		return Statement{}, err
	}
	n, err := clampLimit(limit, DefaultCategoryLimit)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpFoodsByCategory, SQL: foodsByCategorySQL, Args: []any{containsPattern(category), n}}, nil
}

// FoodCategories summarizes every category with its food count. Categories
// without foods appear with a count of zero.
func FoodCategories() Statement {
	return Statement{Op: OpFoodCategories, SQL: foodCategoriesSQL}
}

// TopFoodsByNutrient ranks foods by a nutrient's value, highest first. The
// nutrient name is a substring pattern; rows of every matching nutrient
// definition rank together.
func TopFoodsByNutrient(nutrient string, limit int) (Statement, error) {
	nutrient, err := requireNonEmpty("nutrient", nutrient)
	if err != nil {
		return Statement{}, err
	}
	n, err := clampLimit(limit, DefaultTopLimit)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpTopByNutrient, SQL: topByNutrientSQL, Args: []any{containsPattern(nutrient), n}}, nil
}

// CompareFoods returns one row per stored (food, nutrient) pair for the
// requested foods. Nutrient names match exactly; when nutrients is empty the
// default comparison set applies.
func CompareFoods(foodCodes, nutrients []string) (Statement, error) {
	codes := make([]string, 0, len(foodCodes))
	seen := make(map[string]bool, len(foodCodes))
	for _, code := range foodCodes {
		code = strings.TrimSpace(code)
		if code == "" {
			return Statement{}, &ValidationError{Field: "ndb_numbers", Reason: "food codes must be non-empty strings"}
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if len(codes) < 2 {
		return Statement{}, &ValidationError{Field: "ndb_numbers", Reason: "requires at least two distinct food codes"}
	}

	names := nutrients
	if len(names) == 0 {
		names = nutrition.DefaultComparisonNutrients()
	} else {
		names = make([]string, len(nutrients))
		for i, name := range nutrients {
			name = strings.TrimSpace(name)
			if name == "" {
				return Statement{}, &ValidationError{Field: "nutrients", Reason: "nutrient names must be non-empty strings"}
			}
			names[i] = name
		}
	}
	return Statement{Op: OpCompareFoods, SQL: compareFoodsSQL, Args: []any{codes, names}}, nil
}

// FoodDataSources lists the distinct citations backing a food's nutrient
// values.
func FoodDataSources(foodCode string, limit int) (Statement, error) {
	foodCode, err := requireNonEmpty("ndb_no", foodCode)
	if err != nil {
		return Statement{}, err
	}
	n, err := clampLimit(limit, DefaultSourcesLimit)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpDataSources, SQL: dataSourcesSQL, Args: []any{foodCode, n}}, nil
}

// ListTables names the base tables of the public schema.
func ListTables() Statement {
	return Statement{Op: OpListTables, SQL: listTablesSQL}
}

// DescribeTable returns the column layout of one table. The table name is a
// bound parameter.
func DescribeTable(table string) (Statement, error) {
	table, err := requireNonEmpty("table_name", table)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpDescribeTable, SQL: describeTableSQL, Args: []any{table}}, nil
}

// TableSample reads the first rows of an arbitrary table. Identifiers cannot
// be bound, so the name must be a plain identifier and is quoted before
// interpolation.
func TableSample(table string, limit int) (Statement, error) {
	table, err := requireNonEmpty("table_name", table)
	if err != nil {
		return Statement{}, err
	}
	if !identPattern.MatchString(table) {
		return Statement{}, &ValidationError{Field: "table_name", Reason: "must be a plain SQL identifier"}
	}
	n, err := clampLimit(limit, DefaultSampleLimit)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Op: OpTableSample, SQL: fmt.Sprintf(`SELECT * FROM %q LIMIT $1`, table), Args: []any{n}}, nil
}

// RawQuery passes sql through verbatim with its parameters bound. The caller
// is trusted; nothing is parsed or rewritten.
func RawQuery(sql string, params []any) (Statement, error) {
	if strings.TrimSpace(sql) == "" {
		return Statement{}, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	return Statement{Op: OpRawQuery, SQL: sql, Args: params}, nil
}
