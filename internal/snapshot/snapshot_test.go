// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andrew-jp/tbl-radar-chart/internal/encodings"
	"github.com/andrew-jp/tbl-radar-chart/internal/table"
)

const sampleSnapshot = `{
  "visualSpecification": {
    "marksSpecifications": [
      {
        "encodings": [
          {"id": "category", "field": {"name": "Region"}},
          {"id": "values", "field": [{"name": "Sales"}, {"name": "Profit"}]}
        ]
      }
    ],
    "activeMarksSpecificationIndex": 0
  },
  "pages": [
    {
      "columns": [
        {"name": "Region", "index": 0},
        {"name": "Sales", "index": 1},
        {"name": "Profit", "index": 2}
      ],
      "data": [
        [
          {"value": "East", "formattedValue": "East"},
          {"value": 10, "formattedValue": "10"},
          {"value": 3, "formattedValue": "3"}
        ]
      ]
    }
  ]
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worksheet.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	_, err := Open("data.csv", Options{})
	assert.Error(t, err)
}

func TestJSONSource_ReadsSpecAndPages(t *testing.T) {
	src, err := Open(writeSnapshot(t, sampleSnapshot), Options{})
	require.NoError(t, err)

	ctx := context.Background()
	spec, err := src.GetVisualSpecification(ctx)
	require.NoError(t, err)

	m, err := encodings.Resolve(spec)
	require.NoError(t, err)
	cat, ok := m.Category()
	require.True(t, ok)
	assert.Equal(t, "Region", cat.Name)
	assert.Equal(t, []string{"Sales", "Profit"}, m.ValueNames())

	reader, err := src.GetSummaryReader(ctx)
	require.NoError(t, err)
	rows, err := table.Normalize(ctx, reader)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "East", rows[0]["Region"].FormattedValue)
	assert.Equal(t, 10.0, rows[0]["Sales"].Value)
}

func TestJSONSource_OptionOverridesAssignments(t *testing.T) {
	src, err := Open(writeSnapshot(t, sampleSnapshot), Options{
		Category: "Segment",
		Values:   []string{"Discount"},
	})
	require.NoError(t, err)

	spec, err := src.GetVisualSpecification(context.Background())
	require.NoError(t, err)

	m, err := encodings.Resolve(spec)
	require.NoError(t, err)
	cat, ok := m.Category()
	require.True(t, ok)
	assert.Equal(t, "Segment", cat.Name)
	assert.Equal(t, []string{"Discount"}, m.ValueNames())
}

func TestJSONSource_MalformedFile(t *testing.T) {
	src, err := Open(writeSnapshot(t, "{not json"), Options{})
	require.NoError(t, err)

	_, err = src.GetSummaryReader(context.Background())
	assert.Error(t, err)
}

func TestJSONSource_ObservesFileChanges(t *testing.T) {
	path := writeSnapshot(t, sampleSnapshot)
	src, err := Open(path, Options{})
	require.NoError(t, err)

	ctx := context.Background()
	reader, err := src.GetSummaryReader(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reader.PageCount())

	// Rewrite the file with no pages; the next host call sees the change.
	require.NoError(t, os.WriteFile(path, []byte(`{"pages":[]}`), 0o600))
	reader, err = src.GetSummaryReader(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reader.PageCount())
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	cells := [][]any{
		{"Region", "Sales", "Profit"},
		{"East", 10, 3},
		{"West", 7, 4},
		{"North", 5, 2},
	}
	for r, row := range cells {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, v))
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestWorkbookSource_HeaderBecomesColumns(t *testing.T) {
	src, err := Open(writeWorkbook(t), Options{
		Category: "Region",
		Values:   []string{"Sales", "Profit"},
	})
	require.NoError(t, err)

	ctx := context.Background()
	reader, err := src.GetSummaryReader(ctx)
	require.NoError(t, err)
	rows, err := table.Normalize(ctx, reader)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "East", rows[0]["Region"].FormattedValue)
	assert.Equal(t, 10.0, rows[0]["Sales"].Value)
	assert.Equal(t, 4.0, rows[1]["Profit"].Value)
}

func TestWorkbookSource_Pagination(t *testing.T) {
	src, err := Open(writeWorkbook(t), Options{PageSize: 2, Category: "Region", Values: []string{"Sales"}})
	require.NoError(t, err)

	reader, err := src.GetSummaryReader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, reader.PageCount(), "3 data rows at page size 2")
}

func TestWorkbookSource_SpecFromOptions(t *testing.T) {
	src, err := Open(writeWorkbook(t), Options{Category: "Region", Values: []string{"Sales"}})
	require.NoError(t, err)

	spec, err := src.GetVisualSpecification(context.Background())
	require.NoError(t, err)

	m, err := encodings.Resolve(spec)
	require.NoError(t, err)
	cat, ok := m.Category()
	require.True(t, ok)
	assert.Equal(t, "Region", cat.Name)
	assert.Equal(t, []string{"Sales"}, m.ValueNames())
}

func TestWorkbookSource_NoAssignmentsLeaveSlotsUnbound(t *testing.T) {
	src, err := Open(writeWorkbook(t), Options{})
	require.NoError(t, err)

	spec, err := src.GetVisualSpecification(context.Background())
	require.NoError(t, err)

	m, err := encodings.Resolve(spec)
	require.NoError(t, err)
	_, ok := m.Category()
	assert.False(t, ok)
	assert.Empty(t, m.Values())
}

func TestPageReader_OutOfRange(t *testing.T) {
	r := &pageReader{}
	_, err := r.GetPage(context.Background(), 0)
	assert.Error(t, err)
}
