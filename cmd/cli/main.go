// Package main is the entry point for the parking-fee CLI.
package main

import (
	"os"

	"parking-fee/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
