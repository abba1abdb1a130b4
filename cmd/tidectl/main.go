// Package main provides the tidectl command line tool.
package main

import (
	"os"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
