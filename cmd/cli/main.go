// Package main is the entry point for the trainctl CLI.
// The CLI submits, previews and cancels remote training jobs.
package main

import (
	"os"

	"trainctl/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
