// Package render turns query results into the plain-text responses tools
// return. Rendering is deterministic: fields print in layout order, rows in
// result order, and empty results always produce the same message.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nutridb/usda-mcp/domain/query"
)

// NoResults is the canonical empty-result response.
const NoResults = "No results found."

// Field maps one result column to an output line. A unit suffix comes either
// from Unit (fixed) or from UnitColumn (read per row, as with nutrient
// units).
type Field struct {
	Column     string
	Label      string
	Unit       string
	UnitColumn string
}

// Layout is the ordered list of fields one operation renders.
type Layout struct {
	Fields []Field
}

// Rows renders one block per row with fields in layout order. Blocks are
// separated by a blank line. Columns missing from a row are skipped so the
// same layout serves sparse results.
func Rows(res query.Result, layout Layout) string {
	if res.Empty() {
		return NoResults
	}

	var b strings.Builder
	for i, row := range res.Rows {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeBlock(&b, row, layout, "")
	}
	return b.String()
}

// Columns renders rows generically in result column order, labeling each
// line with the column name. Used where no layout exists, as with raw SQL.
func Columns(res query.Result) string {
	layout := Layout{Fields: make([]Field, 0, len(res.Columns))}
	for _, c := range res.Columns {
		layout.Fields = append(layout.Fields, Field{Column: c, Label: c})
	}
	return Rows(res, layout)
}

// Grouped renders rows grouped by consecutive runs of the heading columns.
// Each group opens with a heading line (first column's value, remaining
// columns in parentheses) followed by the detail fields indented beneath.
// Rows are never reordered; callers order groups in SQL.
func Grouped(res query.Result, headingColumns []string, detail Layout) string {
	if res.Empty() {
		return NoResults
	}

	var b strings.Builder
	lastKey := ""
	first := true
	for _, row := range res.Rows {
		heading := headingLine(row, headingColumns)
		if first || heading != lastKey {
			if !first {
				b.WriteString("\n\n")
			}
			b.WriteString(heading)
			lastKey = heading
			first = false
		}
		b.WriteString("\n")
		writeBlock(&b, row, detail, "  ")
	}
	return b.String()
}

func headingLine(row query.Row, columns []string) string {
	var b strings.Builder
	for i, c := range columns {
		v, ok := row[c]
		if !ok {
			continue
		}
		if i == 0 {
			b.WriteString(formatValue(v))
			continue
		}
		b.WriteString(" (")
		b.WriteString(formatValue(v))
		b.WriteString(")")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, row query.Row, layout Layout, indent string) {
	firstLine := true
	for _, f := range layout.Fields {
		line, ok := fieldLine(row, f)
		if !ok {
			continue
		}
		if !firstLine {
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString(line)
		firstLine = false
	}
}

func fieldLine(row query.Row, f Field) (string, bool) {
	v, ok := row[f.Column]
	if !ok {
		return "", false
	}

	text := formatValue(v)
	unit := f.Unit
	if f.UnitColumn != "" {
		if u, present := row[f.UnitColumn]; present && u != nil {
			unit = formatValue(u)
		}
	}
	if unit != "" && v != nil {
		text += " " + unit
	}

	label := f.Label
	if label == "" {
		label = f.Column
	}
	return label + ": " + text, true
}

// formatValue renders a scanned value deterministically. Floats drop
// trailing zeros so 717.000 and 717 read the same.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
