// Package main implements the java-context-graph CLI (jcg).
// It provides commands for building per-method context graphs from Java
// source files and managing configuration.
package main

import (
	"os"

	"github.com/refactorhq/java-context-graph/cmd/jcg/commands"
)

var (
	version   = "dev"
	buildTime = ""
)

func main() {
	commands.RootCmd.Flags().BoolP("version", "v", false, "Print version information")
	commands.RootCmd.SetVersionTemplate(`jcg version {{.Version}}
`)
	commands.RootCmd.Version = version

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
