package main

import (
	"github.com/spf13/cobra"

	tblog "github.com/andrew-jp/tbl-radar-chart/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for tblradar.
var rootCmd = &cobra.Command{
	Use:   "tblradar",
	Short: "Render radar charts from worksheet summary data",
	Long: `Tblradar is the rendering backend of a radar-chart worksheet extension.
It reads summarized rows and field-to-encoding assignments from a worksheet
snapshot, reconstructs measures the host flattened into a generic name/value
pair, and draws an interactive radar chart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		tblog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
