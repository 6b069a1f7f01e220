// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package radar

import (
	"fmt"
	"io"
	"os"
)

// Renderer draws chart data onto some display surface. Implementations do a
// full rebuild on every call, replacing any prior chart on the same surface.
type Renderer interface {
	Render(data ChartData) error
}

// FileRenderer renders the chart page to a file, truncating any previous
// chart at the same path.
type FileRenderer struct {
	Path string
	Opts Options
}

var _ Renderer = (*FileRenderer)(nil)

// Render writes the chart HTML to the configured path.
func (r *FileRenderer) Render(data ChartData) error {
	f, err := os.Create(r.Path) //nolint:gosec // caller controls path
	if err != nil {
		return fmt.Errorf("create chart output %q: %w", r.Path, err)
	}
	defer f.Close() //nolint:errcheck // best-effort close

	return RenderHTML(data, r.Opts, f)
}

// WriterRenderer renders the chart page to a fixed writer. Useful for
// stdout output and for buffering in the HTTP server.
type WriterRenderer struct {
	W    io.Writer
	Opts Options
}

var _ Renderer = (*WriterRenderer)(nil)

// Render writes the chart HTML to the writer.
func (r *WriterRenderer) Render(data ChartData) error {
	return RenderHTML(data, r.Opts, r.W)
}
