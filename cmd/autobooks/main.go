// Package main is the entry point for the autobooks CLI.
package main

import (
	"os"

	"github.com/midwestsb/autobooks/cmd/autobooks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
