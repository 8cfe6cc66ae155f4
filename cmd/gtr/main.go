// Command gtr is the reference entry point for the test harness. Test
// packages register their suites with gtr/internal/harness from init
// functions (typically via blank imports added here) and the commands
// below run, list and inspect them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtr/internal/cli"
	"gtr/internal/cli/commands"
	"gtr/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "gtr",
		Short:   "Test runner with colourised output and per-test coverage support",
		Long:    `A test harness for registered test suites. Runs tests with colourised console reporting, per-test coverage capture, selective filtering by dotted name, a rerun log of failed tests and a slowest-tests summary.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
