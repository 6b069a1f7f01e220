// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package table flattens the host's paginated summary data into named rows.
package table

import (
	"context"
	"fmt"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// NamedRow maps a column name to its cell value. Every row carries an entry
// for every column of the page it came from; rows have no identity beyond
// their position.
type NamedRow map[string]host.DataValue

// Normalize consumes every page of the reader in host order and returns one
// flat row sequence. The reader is released on all paths. A page-fetch
// failure aborts the whole normalization: the error is propagated after
// release and no partial result is returned.
func Normalize(ctx context.Context, r host.DataReader) ([]NamedRow, error) {
	defer r.Release()

	var rows []NamedRow
	for i := 0; i < r.PageCount(); i++ {
		page, err := r.GetPage(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("fetch summary page %d: %w", i, err)
		}
		rows = append(rows, namedRows(page)...)
	}
	return rows, nil
}

// namedRows maps each cell of a page to its declared column name. Column
// order within the grid is positional, so the declared index wins over the
// slice position of the column entry.
func namedRows(page host.Page) []NamedRow {
	rows := make([]NamedRow, 0, len(page.Data))
	for _, cells := range page.Data {
		row := make(NamedRow, len(page.Columns))
		for _, col := range page.Columns {
			if col.Index < 0 || col.Index >= len(cells) {
				// Host contract: every row covers every column. Tolerate a
				// short row by recording an empty cell rather than panicking.
				row[col.Name] = host.DataValue{}
				continue
			}
			row[col.Name] = cells[col.Index]
		}
		rows = append(rows, row)
	}
	return rows
}
