// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
)

// readWorkbook opens an xlsx workbook and exposes one sheet as paginated
// summary data: the header row names the columns, every following row
// becomes a data row. The visual specification is synthesized from the
// Category/Values options since a workbook carries no encoding state.
func readWorkbook(path string, o Options) ([]host.Page, host.VisualSpecification, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, host.VisualSpecification{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	sheet := o.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, host.VisualSpecification{}, fmt.Errorf("workbook %q has no sheets", path)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, host.VisualSpecification{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, specFromOptions(o), nil
	}

	columns := make([]host.Column, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = host.Column{Name: name, Index: i}
	}

	pageSize := o.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var pages []host.Page
	data := rows[1:]
	for start := 0; start < len(data); start += pageSize {
		end := start + pageSize
		if end > len(data) {
			end = len(data)
		}
		page := host.Page{Columns: columns, Data: make([][]host.DataValue, 0, end-start)}
		for _, row := range data[start:end] {
			page.Data = append(page.Data, cellRow(row, len(columns)))
		}
		pages = append(pages, page)
	}

	return pages, specFromOptions(o), nil
}

// cellRow converts one sheet row into host cells, padding short rows so
// every row covers every column.
func cellRow(row []string, width int) []host.DataValue {
	cells := make([]host.DataValue, width)
	for i := 0; i < width; i++ {
		if i >= len(row) {
			cells[i] = host.DataValue{}
			continue
		}
		cells[i] = host.DataValue{Value: cellValue(row[i]), FormattedValue: row[i]}
	}
	return cells
}

// cellValue parses a sheet cell the way the host types summary values:
// numbers stay numeric, everything else stays a string.
func cellValue(s string) any {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
