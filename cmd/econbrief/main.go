// Package main is the entry point for the econbrief CLI.
package main

import (
	"os"

	"github.com/econbrief/econbrief/cmd/econbrief/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
