// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"

	"ims-viewer/internal/logger"
	"ims-viewer/internal/version"
)

var (
	// Flags for render command
	outputFile string
	xMin       float64
	xMax       float64
	width      int
	height     int

	// Flags for calibrate command
	edcCoefficient float64

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "imsrender",
	Short: "imsrender - headless spectrum rendering and CCS calibration",
	Long: `imsrender renders mass spectra to PNG figures and fits TWIM CCS
calibrations without starting the desktop viewer.

Supported input formats:
- mzML (base64-encoded binary arrays, zlib compression)
- two-column text (m/z and intensity; comma, tab, or space separated)`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logLevel)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(calibrateCmd)

	renderCmd.Flags().StringVarP(&outputFile, "out", "o", "spectrum.png", "Output PNG file")
	renderCmd.Flags().Float64Var(&xMin, "xmin", 0, "Lower m/z bound (0 = data minimum)")
	renderCmd.Flags().Float64Var(&xMax, "xmax", 0, "Upper m/z bound (0 = data maximum)")
	renderCmd.Flags().IntVar(&width, "width", 1000, "Figure width in pixels")
	renderCmd.Flags().IntVar(&height, "height", 600, "Figure height in pixels")

	calibrateCmd.Flags().Float64Var(&edcCoefficient, "edc", 1.35, "EDC delay coefficient")
}
