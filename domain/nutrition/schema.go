// Package nutrition describes the USDA Standard Reference schema the query
// layer reads. It is the single place table and column identifiers appear;
// everything else composes SQL from these values and bound parameters.
package nutrition

// Table identifiers.
const (
	TableFoods           = "food_des"
	TableCategories      = "fd_group"
	TableNutrientValues  = "nut_data"
	TableNutrientDefs    = "nutr_def"
	TableDataSources     = "data_src"
	TableDataSourceLinks = "datsrcln"
)

// Canonical aliases used in composed SQL.
const (
	AliasFoods          = "fd"
	AliasCategories     = "fg"
	AliasNutrientValues = "n"
	AliasNutrientDefs   = "nd"
	AliasDataSources    = "ds"
	AliasSourceLinks    = "dl"
)

// Food columns.
const (
	ColFoodCode      = "ndb_no"
	ColFoodCategory  = "fdgrp_cd"
	ColFoodLongDesc  = "long_desc"
	ColFoodShortDesc = "shrt_desc"
)

// Category columns.
const (
	ColCategoryCode = "fdgrp_cd"
	ColCategoryName = "fddrp_desc"
)

// Nutrient value columns.
const (
	ColValueFood     = "ndb_no"
	ColValueNutrient = "nutr_no"
	ColValueAmount   = "nutr_val"
)

// Nutrient definition columns.
const (
	ColNutrientCode  = "nutr_no"
	ColNutrientName  = "nutrdesc"
	ColNutrientUnits = "units"
	ColNutrientOrder = "sr_order"
)

// Data source columns.
const (
	ColSourceID      = "datasrc_id"
	ColSourceAuthors = "authors"
	ColSourceTitle   = "title"
	ColSourceYear    = "year"
)

// Join predicates between aliased relations.
const (
	JoinFoodCategory  = "fd.fdgrp_cd = fg.fdgrp_cd"
	JoinFoodValue     = "fd.ndb_no = n.ndb_no"
	JoinValueNutrient = "n.nutr_no = nd.nutr_no"
	JoinValueLink     = "n.ndb_no = dl.ndb_no AND n.nutr_no = dl.nutr_no"
	JoinLinkSource    = "dl.datasrc_id = ds.datasrc_id"
)

// Relation is a static description of one table: its identifier, the alias
// composed SQL refers to it by, and the columns the query layer reads.
type Relation struct {
	Table   string
	Alias   string
	Columns []string
}

// Relations returns the tables the query layer knows about, link table
// included. The slice is rebuilt on each call so callers can mutate it.
func Relations() []Relation {
	return []Relation{
		{Table: TableFoods, Alias: AliasFoods, Columns: []string{ColFoodCode, ColFoodCategory, ColFoodLongDesc, ColFoodShortDesc}},
		{Table: TableCategories, Alias: AliasCategories, Columns: []string{ColCategoryCode, ColCategoryName}},
		{Table: TableNutrientValues, Alias: AliasNutrientValues, Columns: []string{ColValueFood, ColValueNutrient, ColValueAmount}},
		{Table: TableNutrientDefs, Alias: AliasNutrientDefs, Columns: []string{ColNutrientCode, ColNutrientName, ColNutrientUnits, ColNutrientOrder}},
		{Table: TableDataSources, Alias: AliasDataSources, Columns: []string{ColSourceID, ColSourceAuthors, ColSourceTitle, ColSourceYear}},
		{Table: TableDataSourceLinks, Alias: AliasSourceLinks, Columns: []string{ColValueFood, ColValueNutrient, ColSourceID}},
	}
}

// DefaultComparisonNutrients returns the nutrient names compared when a
// caller does not ask for specific ones. Names match nutr_def.nutrdesc
// exactly, including case and punctuation.
func DefaultComparisonNutrients() []string {
	return []string{
		"Energy",
		"Protein",
		"Total lipid (fat)",
		"Carbohydrate, by difference",
	}
}
