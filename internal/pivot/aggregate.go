// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package pivot reconstructs a category-to-measures grouping from normalized
// summary rows, whether the host delivered one column per measure or
// flattened all measures into a generic name/value column pair.
package pivot

import (
	"strconv"
	"strings"

	"github.com/andrew-jp/tbl-radar-chart/internal/table"
)

// Reserved field names the host uses when it flattens multiple measures
// onto a shared axis.
const (
	MeasureNamesField  = "Measure Names"
	MeasureValuesField = "Measure Values"
)

// UnknownCategory stands in for rows whose category cell is missing.
const UnknownCategory = "Unknown"

// Aggregation is the result of grouping rows by category. Categories appear
// exactly once, in first-seen row order. Missing (category, label) pairs are
// not stored; they resolve to 0 when projected through Series.
type Aggregation struct {
	// Labels is the shared axis: measure names in first-seen order for
	// flattened data, or the declared value-field order otherwise.
	Labels []string

	// Categories lists the category keys in first-seen order.
	Categories []string

	values map[string]map[string]float64
}

// Series is one category's value vector projected over the label axis.
type Series struct {
	Label string
	Data  []float64
}

// Aggregate groups rows by the category field and produces one numeric value
// per (category, label) pair, with last write winning on duplicates. It is a
// pure function of its inputs.
//
// Form detection inspects only the first row: when it carries non-nil values
// under both reserved measure fields, the data is treated as flattened.
// An empty or malformed first row defeats detection; this single-row
// heuristic matches the host's own pivoting behavior and is a known
// limitation.
func Aggregate(rows []table.NamedRow, categoryField string, valueFields []string) Aggregation {
	if pivoted(rows) {
		return aggregateFlattened(rows, categoryField)
	}
	return aggregateDirect(rows, categoryField, valueFields)
}

// pivoted reports whether the host flattened measures into the reserved
// name/value column pair.
func pivoted(rows []table.NamedRow) bool {
	if len(rows) == 0 {
		return false
	}
	first := rows[0]
	return first[MeasureNamesField].Value != nil && first[MeasureValuesField].Value != nil
}

func aggregateFlattened(rows []table.NamedRow, categoryField string) Aggregation {
	agg := Aggregation{values: make(map[string]map[string]float64)}
	seen := make(map[string]bool)

	for _, row := range rows {
		category := formattedOr(row, categoryField, UnknownCategory)
		label := formattedOr(row, MeasureNamesField, "")
		value := toFloat(row[MeasureValuesField].Value)

		if !seen[label] {
			seen[label] = true
			agg.Labels = append(agg.Labels, label)
		}
		agg.set(category, label, value)
	}
	return agg
}

func aggregateDirect(rows []table.NamedRow, categoryField string, valueFields []string) Aggregation {
	agg := Aggregation{values: make(map[string]map[string]float64)}
	agg.Labels = append(agg.Labels, valueFields...)

	for _, row := range rows {
		category := formattedOr(row, categoryField, UnknownCategory)
		agg.touch(category)
		for _, field := range valueFields {
			cell, ok := row[field]
			if !ok {
				// Absent cells stay absent; they become 0 only when the
				// grouping is projected over the label axis.
				continue
			}
			agg.set(category, field, toFloat(cell.Value))
		}
	}
	return agg
}

// touch registers a category without recording a measurement.
func (a *Aggregation) touch(category string) {
	if _, ok := a.values[category]; !ok {
		a.values[category] = make(map[string]float64)
		a.Categories = append(a.Categories, category)
	}
}

// set records one measurement, last write wins.
func (a *Aggregation) set(category, label string, value float64) {
	a.touch(category)
	a.values[category][label] = value
}

// Value returns the stored measurement for a (category, label) pair. The
// second result is false when the pair was never observed.
func (a Aggregation) Value(category, label string) (float64, bool) {
	v, ok := a.values[category][label]
	return v, ok
}

// Series projects every category's values over the label axis. The vectors
// are rectangular: pairs never observed come out as 0.
func (a Aggregation) Series() []Series {
	out := make([]Series, 0, len(a.Categories))
	for _, category := range a.Categories {
		data := make([]float64, len(a.Labels))
		for i, label := range a.Labels {
			data[i] = a.values[category][label]
		}
		out = append(out, Series{Label: category, Data: data})
	}
	return out
}

// Empty reports whether the aggregation holds no categories.
func (a Aggregation) Empty() bool {
	return len(a.Categories) == 0
}

// formattedOr returns the row's formatted value for a field, or fallback
// when the field is absent from the row.
func formattedOr(row table.NamedRow, field, fallback string) string {
	v, ok := row[field]
	if !ok {
		return fallback
	}
	return v.FormattedValue
}

// toFloat coerces a host cell value to float64. Numeric fields usually carry
// float64, but snapshot sources may deliver ints or numeric strings. Values
// that cannot be coerced count as 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
