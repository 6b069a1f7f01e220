// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

// Package radar turns an aggregation into radar-chart data and renders it.
package radar

import "github.com/andrew-jp/tbl-radar-chart/internal/pivot"

// Border widths for rendered series. A selected series is drawn heavier.
const (
	defaultBorderWidth  = 2
	selectedBorderWidth = 4
)

// Dataset is one polygon of the radar chart: a category's value vector
// aligned to the shared label axis.
type Dataset struct {
	Label       string
	Data        []float64
	Fill        bool
	BorderWidth int
}

// ChartData is everything the rendering surface needs to draw the chart.
type ChartData struct {
	Labels   []string
	Datasets []Dataset
}

// Build derives chart data from an aggregation. Every dataset starts filled
// with the default border width.
func Build(agg pivot.Aggregation) ChartData {
	series := agg.Series()
	datasets := make([]Dataset, 0, len(series))
	for _, s := range series {
		datasets = append(datasets, Dataset{
			Label:       s.Label,
			Data:        s.Data,
			Fill:        true,
			BorderWidth: defaultBorderWidth,
		})
	}
	labels := make([]string, len(agg.Labels))
	copy(labels, agg.Labels)
	return ChartData{Labels: labels, Datasets: datasets}
}

// Promote returns a copy of the chart data with the selected dataset moved
// to the front and emphasized; every other dataset is reset to the default
// width. An out-of-range index returns an unemphasized copy. The underlying
// aggregation is never touched; this is a display affordance only.
func Promote(data ChartData, index int) ChartData {
	out := Clone(data)
	for i := range out.Datasets {
		out.Datasets[i].BorderWidth = defaultBorderWidth
	}
	if index < 0 || index >= len(out.Datasets) {
		return out
	}

	selected := out.Datasets[index]
	selected.BorderWidth = selectedBorderWidth
	rest := append(out.Datasets[:index:index], out.Datasets[index+1:]...)
	out.Datasets = append([]Dataset{selected}, rest...)
	return out
}

// Clone deep-copies chart data so callers can hand out cached state without
// aliasing the cache.
func Clone(data ChartData) ChartData {
	out := ChartData{
		Labels:   make([]string, len(data.Labels)),
		Datasets: make([]Dataset, len(data.Datasets)),
	}
	copy(out.Labels, data.Labels)
	for i, ds := range data.Datasets {
		vals := make([]float64, len(ds.Data))
		copy(vals, ds.Data)
		out.Datasets[i] = Dataset{
			Label:       ds.Label,
			Data:        vals,
			Fill:        ds.Fill,
			BorderWidth: ds.BorderWidth,
		}
	}
	return out
}
