// Package report turns a ResultSet into column-ordered tables and a run
// summary. It performs no I/O; writing the artifacts is pkg/storage's job.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/petern11/schema-crawler/models"
)

// Table is the tabular output for one schema type bucket.
type Table struct {
	SchemaType string
	Header     []string
	Rows       [][]string
}

// Summary counts records per bucket.
type Summary struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

// Leading columns every table carries before the flattened schema fields.
var baseColumns = []string{"sourceUrl", "schemaFound", "errorMessage"}

// Build produces one table per non-empty bucket plus the summary. Tables
// come out in the order their types were first seen during the crawl.
func Build(rs *models.ResultSet) ([]Table, Summary) {
	summary := Summary{ByType: make(map[string]int)}

	var tables []Table
	for _, schemaType := range rs.Types() {
		records := rs.Records(schemaType)
		if len(records) == 0 {
			continue
		}
		tables = append(tables, buildTable(schemaType, records))
		summary.ByType[schemaType] = len(records)
		summary.Total += len(records)
	}
	return tables, summary
}

// buildTable computes the column order for one bucket: the base columns,
// then every field key seen across the bucket's records. Keys are sorted
// within each record before merging so the order is deterministic; across
// records it stays first-seen.
func buildTable(schemaType string, records []models.Record) Table {
	header := append([]string{}, baseColumns...)
	seen := make(map[string]bool, len(baseColumns))
	for _, col := range baseColumns {
		seen[col] = true
	}

	for _, rec := range records {
		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row, rec.SourceURL, strconv.FormatBool(rec.SchemaFound), rec.ErrorMessage)
		for _, col := range header[len(baseColumns):] {
			v, ok := rec.Fields[col]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, stringifyValue(v))
		}
		rows = append(rows, row)
	}

	return Table{SchemaType: schemaType, Header: header, Rows: rows}
}

// stringifyValue renders a flattened cell. Numbers drop the float64 noise
// JSON decoding introduces ("2", not "2.000000"); null renders empty.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
