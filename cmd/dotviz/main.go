// Package main is the entry point for the dotviz CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dotviz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
