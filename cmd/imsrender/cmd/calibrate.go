package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ims-viewer/internal/ccs"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <calibrants.yaml>",
	Short: "Fit a TWIM CCS calibration from a calibrant table",
	Long: `Fit the power-law drift-time to CCS calibration from a YAML table of
calibrant ions with known collision cross sections. The fitted
coefficients and per-calibrant residuals are printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cals, err := ccs.LoadCalibrants(args[0])
		if err != nil {
			return fmt.Errorf("failed to load calibrants: %w", err)
		}

		cal, err := ccs.Fit(cals, edcCoefficient)
		if err != nil {
			return fmt.Errorf("calibration fit failed: %w", err)
		}

		fmt.Printf("calibration: A=%.6f B=%.6f (EDC %.3f, RMSD %.3f%%)\n",
			cal.A, cal.B, cal.EDC, cal.RMSD*100)
		fmt.Printf("%-24s %10s %3s %10s %10s %8s\n",
			"name", "m/z", "z", "ref CCS", "fit CCS", "err %")
		for _, c := range cals {
			fit := cal.CCS(c.MZ(), c.Charge, c.DriftTime)
			errPct := 100 * (fit - c.CCS) / c.CCS
			fmt.Printf("%-24s %10.4f %3d %10.2f %10.2f %+8.3f\n",
				c.Name, c.MZ(), c.Charge, c.CCS, fit, errPct)
		}
		return nil
	},
}
