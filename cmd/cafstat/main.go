// Command cafstat inspects histograms, spectra and likelihood surfaces stored
// in analysis output files, and evaluates the statistics behind their error
// bars and contours.
//
// Usage:
//
//	cafstat [command] [flags]
//
// Examples:
//
//	cafstat prob 1 2 3
//	cafstat poisson --sigma 2 0 3 10
//	cafstat hist out.json numu/reco_energy --error poisson
//	cafstat spectrum out.json numu/spectrum --pot 6e20
//	cafstat surface out.json surface --levels 1,2,3
//	cafstat formats
//
// Settings are read from an optional cafstat.yaml and CAFSTAT_* environment
// variables; flags take precedence.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cafstat: %v\n", err)
		os.Exit(1)
	}
}
