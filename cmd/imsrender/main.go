// imsrender - headless rendering and calibration for IMS Viewer data
package main

import (
	"fmt"
	"os"

	"ims-viewer/cmd/imsrender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
