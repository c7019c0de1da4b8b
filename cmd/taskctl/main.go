// Package main is the entry point for the taskboard admin CLI.
package main

import (
	"os"

	"github.com/good-yellow-bee/taskboard/cmd/taskctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
