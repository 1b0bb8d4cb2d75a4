package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ims-viewer/internal/axis"
	"ims-viewer/internal/export"
	"ims-viewer/internal/msdata"
)

var renderCmd = &cobra.Command{
	Use:   "render <spectrum-file>",
	Short: "Render a spectrum to a PNG figure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := msdata.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load spectrum: %w", err)
		}

		view := spec.DataExtents()
		if xMin != 0 {
			view.XMin = xMin
		}
		if xMax != 0 {
			view.XMax = xMax
		}
		if !view.Valid() {
			return fmt.Errorf("invalid view window %.4g - %.4g", view.XMin, view.XMax)
		}

		opts := export.FigureOptions{Width: width, Height: height}
		if err := export.SaveSpectrumPNG(outputFile, spec, view, opts); err != nil {
			return fmt.Errorf("failed to write figure: %w", err)
		}

		fmt.Printf("Wrote %s (%dx%d, m/z %.2f - %.2f)\n",
			outputFile, width, height, view.XMin, view.XMax)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <spectrum-file>",
	Short: "Print summary statistics for a spectrum file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := msdata.LoadAll(args[0])
		if err != nil {
			return fmt.Errorf("failed to load file: %w", err)
		}

		for i, spec := range specs {
			ext := spec.DataExtents()
			bpMZ, bpInt := spec.BasePeak()
			_, unit, kilo := axis.NormalizeMass(ext.XMax)
			lo, hi := ext.XMin, ext.XMax
			if kilo {
				lo /= 1000
				hi /= 1000
			}
			fmt.Printf("spectrum %d: %d peaks, range %.2f - %.2f %s, TIC %.4g, base peak %.4f (%.4g)\n",
				i, spec.Len(), lo, hi, unit, spec.TIC(), bpMZ, bpInt)
		}
		return nil
	},
}
