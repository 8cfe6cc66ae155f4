package commands

import (
	"github.com/spf13/cobra"

	"gtr/internal/cli"
	"gtr/internal/config"
	"gtr/internal/storage"
	"gtr/internal/ui"
)

// Commands holds all CLI commands.
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Faills *FaillsCommand
}

// NewCommands creates all commands with dependencies.
func NewCommands(cfg *config.Config) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:    NewRunCommand(cfg, jsonStorage, formatter),
		List:   NewListCommand(cfg, formatter),
		Faills: NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [selector...]",
		Short: "Run registered tests",
		Long:  "Run registered tests, optionally reduced to the dotted name selectors given as arguments (e.g. 'mymodule.MyCase.testSomething', or any prefix of it)",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Rebuild config with flags after parsing
			*cfg = *config.Load(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Verbosity, "verbosity", "v", config.DefaultVerbosity, "Output detail: 0 progress bar, 1 dots, 2 per-test lines, 3 per-test coverage")
	runCmd.Flags().BoolVar(&flags.Descriptions, "descriptions", false, "Include test descriptions in the failure listings")
	runCmd.Flags().StringVar(&flags.RerunLog, "rerun-log", "", "Append every failed or errored test identity to this file")
	runCmd.Flags().StringSliceVar(&flags.CoverageDirs, "coverage-src", nil, "Measure coverage for sources under these directories")
	runCmd.Flags().StringVar(&flags.CoverageHTML, "coverage-html", "", "Render an HTML coverage report into this directory")
	runCmd.Flags().BoolVar(&flags.CoverageSave, "coverage-save", false, "Persist the aggregate coverage data")
	runCmd.Flags().BoolVar(&flags.NoCovReport, "no-cov-report", false, "Skip the textual coverage summary")
	runCmd.Flags().BoolVar(&flags.Failed, "failed", false, "Run only the tests recorded in the rerun log")
	runCmd.Flags().StringVarP(&flags.Location, "location", "l", "", "Restrict discovery to modules under this dotted prefix")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [selector...]",
		Short: "List registered tests",
		Long:  "List registered tests as a module tree without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			*cfg = *config.Load(flags.ToConfigFlags())
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.Location, "location", "l", "", "Restrict discovery to modules under this dotted prefix")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", true, "List individual test cases instead of module counts")
	rootCmd.AddCommand(listCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
