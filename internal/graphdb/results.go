// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphdb

import (
	"strconv"
	"strings"

	"github.com/pdiddy/method-recommender/pkg/types"
)

// Row maps a result variable to its coerced scalar value. Unbound
// variables are absent from the map, never present as nil; callers use
// presence checks.
type Row map[string]any

// Str returns the string value bound to key, or "" when key is unbound
// or bound to a non-string.
func (r Row) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the integer value bound to key, or 0 when key is unbound
// or bound to a non-integer.
func (r Row) Int(key string) int {
	n, _ := r[key].(int)
	return n
}

// BindingsToRows flattens a binding set into plain rows, coercing each
// value by its datatype suffix.
func BindingsToRows(set BindingSet) []Row {
	rows := make([]Row, 0, len(set.Results.Bindings))
	for _, binding := range set.Results.Bindings {
		row := make(Row, len(binding))
		for name, value := range binding {
			row[name] = parseValue(value)
		}
		rows = append(rows, row)
	}
	return rows
}

// parseValue coerces a tagged value by datatype URI suffix: integer-like
// suffixes parse as int, decimal-like as float64, boolean compares the
// lowercased literal to "true". Parse failures fall back to the raw
// string; plain strings, IRIs, and unrecognized datatypes pass through.
func parseValue(v BindingValue) any {
	switch {
	case hasSuffix(v.Datatype, "integer", "int", "long"):
		if n, err := strconv.Atoi(v.Value); err == nil {
			return n
		}
		return v.Value
	case hasSuffix(v.Datatype, "decimal", "double", "float"):
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return v.Value
	case hasSuffix(v.Datatype, "boolean"):
		return strings.ToLower(v.Value) == "true"
	default:
		return v.Value
	}
}

func hasSuffix(datatype string, suffixes ...string) bool {
	if datatype == "" {
		return false
	}
	for _, s := range suffixes {
		if strings.HasSuffix(datatype, s) {
			return true
		}
	}
	return false
}

// RowsToOptions projects rows onto {iri, label} options for selection
// lists. Rows missing either field, or binding either to a non-string,
// are dropped silently: a data-quality filter, not an error. Ordering is
// whatever the query's ORDER BY produced; no sorting and no dedup here.
func RowsToOptions(rows []Row) []types.Option {
	options := make([]types.Option, 0, len(rows))
	for _, row := range rows {
		iri, iriOK := row["iri"].(string)
		label, labelOK := row["label"].(string)
		if !iriOK || !labelOK {
			continue
		}
		options = append(options, types.Option{IRI: iri, Label: label})
	}
	return options
}
