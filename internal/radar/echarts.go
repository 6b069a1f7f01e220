// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package radar

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Options control the rendered chart surface.
type Options struct {
	Title  string
	Width  string
	Height string
}

// withDefaults fills unset display options.
func (o Options) withDefaults() Options {
	if o.Width == "" {
		o.Width = "900px"
	}
	if o.Height == "" {
		o.Height = "600px"
	}
	return o
}

// RenderHTML draws a full radar chart page to w, replacing whatever the
// writer previously held. Each label becomes a radial indicator sharing one
// maximum; each dataset becomes a series polygon.
func RenderHTML(data ChartData, o Options, w io.Writer) error {
	if len(data.Labels) == 0 {
		return fmt.Errorf("render radar: no labels")
	}
	o = o.withDefaults()

	chart := charts.NewRadar()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators(data),
			SplitNumber: 5,
			Shape:       "polygon",
		}),
	)

	for _, ds := range data.Datasets {
		series := []opts.RadarData{{Name: ds.Label, Value: ds.Data}}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Width: float32(ds.BorderWidth)}),
		}
		if ds.Fill {
			seriesOpts = append(seriesOpts,
				charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}))
		}
		chart.AddSeries(ds.Label, series, seriesOpts...)
	}

	if err := chart.Render(w); err != nil {
		return fmt.Errorf("render radar: %w", err)
	}
	return nil
}

// indicators derives one radial axis per label, sharing a headroom-padded
// maximum so all polygons plot on the same scale.
func indicators(data ChartData) []*opts.Indicator {
	max := 0.0
	for _, ds := range data.Datasets {
		for _, v := range ds.Data {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}
	max *= 1.1

	out := make([]*opts.Indicator, len(data.Labels))
	for i, label := range data.Labels {
		out[i] = &opts.Indicator{Name: label, Max: float32(max)}
	}
	return out
}
