// Package main is the entry point for the cor CLI tool.
package main

import (
	"os"

	"github.com/aviaryhq/cortex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
