// Package main provides the sonido-contour CLI tool.
//
// Usage:
//
//	sonido-contour [flags] <command> [args]
//
// Commands:
//
//	filter  - Clean a raw (seconds, Hz) contour into semitones
//	compare - DTW distance between two contours
//	replay  - Feed a contour sample by sample through a capture session
//	plot    - Draw a cleaned contour in the terminal
//
// Configuration:
//
//	A YAML file given with --config overrides the built-in limits; the
//	CONTOUR_LOG_LEVEL and CONTOUR_PASS_BAND environment variables and the
//	matching flags override the file.
package main

import (
	"fmt"
	"os"

	"github.com/RyanBlaney/sonido-contour/cmd/sonido-contour/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
