// Copyright 2026 The tbl-radar-chart Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/andrew-jp/tbl-radar-chart/internal/config"
	"github.com/andrew-jp/tbl-radar-chart/internal/pipeline"
	"github.com/andrew-jp/tbl-radar-chart/internal/radar"
	"github.com/andrew-jp/tbl-radar-chart/internal/snapshot"
)

// Render command flags.
var (
	renderOutput   string
	renderTitle    string
	renderWidth    string
	renderHeight   string
	renderSheet    string
	renderPageSize int
	renderCategory string
	renderValues   []string
)

// renderCmd renders one chart from a worksheet snapshot.
var renderCmd = &cobra.Command{
	Use:   "render <snapshot>",
	Short: "Render a radar chart from a worksheet snapshot",
	Long: `Render a radar chart from a worksheet snapshot file.

Snapshots are either saved worksheet state (.json, summary data plus the
visual specification) or a workbook sheet (.xlsx, header row as columns).
Workbook snapshots carry no encoding state, so --category and --values
(or the .tblradar.yaml equivalents) supply the field assignments.

Examples:
  tblradar render worksheet.json -o chart.html
  tblradar render sales.xlsx --category Region --values Sales,Profit`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output HTML path (default: stdout)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "chart title")
	renderCmd.Flags().StringVar(&renderWidth, "width", "", "chart width (e.g. 900px)")
	renderCmd.Flags().StringVar(&renderHeight, "height", "", "chart height (e.g. 600px)")
	renderCmd.Flags().StringVar(&renderSheet, "sheet", "", "workbook sheet name (default: first sheet)")
	renderCmd.Flags().IntVar(&renderPageSize, "page-size", 0, "rows per summary data page for workbook snapshots")
	renderCmd.Flags().StringVar(&renderCategory, "category", "", "field for the category slot")
	renderCmd.Flags().StringSliceVar(&renderValues, "values", nil, "fields for the values slot (comma-separated)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitInvalidArgs, "tblradar: %v", err)
	}
	applyRenderDefaults(cfg)

	src, err := snapshot.Open(args[0], snapshot.Options{
		Sheet:    renderSheet,
		PageSize: renderPageSize,
		Category: renderCategory,
		Values:   renderValues,
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "tblradar: %v", err)
	}

	opts := radar.Options{Title: renderTitle, Width: renderWidth, Height: renderHeight}
	var renderer radar.Renderer
	if renderOutput != "" {
		renderer = &radar.FileRenderer{Path: renderOutput, Opts: opts}
	} else {
		renderer = &radar.WriterRenderer{W: cmd.OutOrStdout(), Opts: opts}
	}

	session := pipeline.NewSession(src, renderer)
	if err := session.HandleDataChanged(cmd.Context()); err != nil {
		return exitError(ExitUpdateFailed, "tblradar: %v", err)
	}

	if session.State() == pipeline.StateNeedsFields {
		printWarning(cmd, session.Warning())
		return exitError(ExitNeedsFields, "")
	}

	if renderOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "chart written to %s\n", renderOutput)
	}
	return nil
}

// applyRenderDefaults fills unset render flags from the config file; flags
// always win over file values.
func applyRenderDefaults(cfg *config.Config) {
	if renderTitle == "" {
		renderTitle = cfg.Title
	}
	if renderWidth == "" {
		renderWidth = cfg.Width
	}
	if renderHeight == "" {
		renderHeight = cfg.Height
	}
	if renderSheet == "" {
		renderSheet = cfg.Sheet
	}
	if renderPageSize == 0 {
		renderPageSize = cfg.PageSize
	}
	if renderCategory == "" {
		renderCategory = cfg.Category
	}
	if len(renderValues) == 0 {
		renderValues = cfg.Values
	}
	if renderOutput == "" {
		renderOutput = cfg.Output
	}
}

// printWarning shows the inline assign-fields message on stderr.
func printWarning(cmd *cobra.Command, msg string) {
	warn := color.New(color.FgYellow)
	if noColor {
		warn.DisableColor()
	}
	_, _ = warn.Fprintln(cmd.ErrOrStderr(), msg)
}
