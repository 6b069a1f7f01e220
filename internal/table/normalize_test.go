// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package table

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-jp/tbl-radar-chart/internal/host"
	"github.com/andrew-jp/tbl-radar-chart/internal/hosttest"
)

func page(cols []string, rows ...[]host.DataValue) host.Page {
	columns := make([]host.Column, len(cols))
	for i, name := range cols {
		columns[i] = host.Column{Name: name, Index: i}
	}
	return host.Page{Columns: columns, Data: rows}
}

func TestNormalize_SinglePage(t *testing.T) {
	r := &hosttest.Reader{Pages: []host.Page{
		page([]string{"Region", "Sales"},
			[]host.DataValue{hosttest.TextCell("East"), hosttest.NumberCell(10, "10")},
			[]host.DataValue{hosttest.TextCell("West"), hosttest.NumberCell(20, "20")},
		),
	}}

	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "East", rows[0]["Region"].FormattedValue)
	assert.Equal(t, 20.0, rows[1]["Sales"].Value)
	assert.Equal(t, 1, r.ReleaseCalls())
}

// Every row's key set must equal the page's column-name set.
func TestNormalize_RowCompleteness(t *testing.T) {
	cols := []string{"Category", "A", "B", "C"}
	r := &hosttest.Reader{Pages: []host.Page{
		page(cols,
			[]host.DataValue{hosttest.TextCell("x"), hosttest.NumberCell(1, "1"), hosttest.NumberCell(2, "2"), hosttest.NumberCell(3, "3")},
		),
	}}

	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(cols))
	for _, name := range cols {
		assert.Contains(t, rows[0], name)
	}
}

func TestNormalize_MultiplePagesInOrder(t *testing.T) {
	r := &hosttest.Reader{Pages: []host.Page{
		page([]string{"Region"}, []host.DataValue{hosttest.TextCell("p0r0")}),
		page([]string{"Region"},
			[]host.DataValue{hosttest.TextCell("p1r0")},
			[]host.DataValue{hosttest.TextCell("p1r1")},
		),
		page([]string{"Region"}, []host.DataValue{hosttest.TextCell("p2r0")}),
	}}

	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var got []string
	for _, row := range rows {
		got = append(got, row["Region"].FormattedValue)
	}
	assert.Equal(t, []string{"p0r0", "p1r0", "p1r1", "p2r0"}, got)
	assert.Equal(t, 3, r.PageCalls())
}

func TestNormalize_ColumnIndexBeatsSlicePosition(t *testing.T) {
	// Columns declared out of order: the declared index decides which cell
	// belongs to which name.
	p := host.Page{
		Columns: []host.Column{{Name: "Sales", Index: 1}, {Name: "Region", Index: 0}},
		Data: [][]host.DataValue{
			{hosttest.TextCell("East"), hosttest.NumberCell(42, "42")},
		},
	}
	r := &hosttest.Reader{Pages: []host.Page{p}}

	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "East", rows[0]["Region"].FormattedValue)
	assert.Equal(t, 42.0, rows[0]["Sales"].Value)
}

func TestNormalize_FetchErrorReleasesAndAborts(t *testing.T) {
	fetchErr := errors.New("page gone")
	r := &hosttest.Reader{
		Pages: []host.Page{
			page([]string{"Region"}, []host.DataValue{hosttest.TextCell("ok")}),
			page([]string{"Region"}, []host.DataValue{hosttest.TextCell("never")}),
		},
		FailAt:  1,
		FailErr: fetchErr,
	}

	rows, err := Normalize(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, rows, "no partial result on page-fetch failure")
	assert.Equal(t, 1, r.ReleaseCalls(), "reader must be released even on error")
}

func TestNormalize_EmptyReader(t *testing.T) {
	r := &hosttest.Reader{}
	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 1, r.ReleaseCalls())
}

func TestNormalize_ShortRowGetsEmptyCell(t *testing.T) {
	p := host.Page{
		Columns: []host.Column{{Name: "Region", Index: 0}, {Name: "Sales", Index: 1}},
		Data:    [][]host.DataValue{{hosttest.TextCell("East")}},
	}
	r := &hosttest.Reader{Pages: []host.Page{p}}

	rows, err := Normalize(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, host.DataValue{}, rows[0]["Sales"])
}
