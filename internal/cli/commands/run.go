package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gtr/internal/collector"
	"gtr/internal/config"
	"gtr/internal/domain"
	"gtr/internal/execution"
	"gtr/internal/selector"
	"gtr/internal/storage"
	"gtr/internal/ui"
)

// RunCommand handles the run command.
type RunCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	patterns := args
	if rc.config.Flags.Failed {
		fromLog, err := readRerunLog(rc.config.RerunLog)
		if err != nil {
			return err
		}
		patterns = append(patterns, fromLog...)
		// start the log over so only this run's failures remain and
		// repeated --failed runs converge
		if err := os.Truncate(rc.config.RerunLog, 0); err != nil {
			return fmt.Errorf("reset rerun log: %w", err)
		}
	}

	// Discover and filter tests
	suite, err := selector.FilterLocation(rc.config.Flags.Location, patterns)
	if err != nil {
		return err
	}

	runner := execution.NewRunner(rc.config, os.Stdout)
	col, elapsed, err := runner.Run(suite)
	if err != nil {
		return err
	}

	if err := col.CoverageReport(collector.ReportOptions{
		ToStream: !rc.config.Flags.NoCovReport,
		Save:     rc.config.Flags.CoverageSave,
		SavePath: rc.config.GetCoveragePath(),
		HTMLDir:  rc.config.Flags.CoverageHTML,
	}); err != nil {
		return err
	}

	output := buildOutput(col, elapsed)
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	rc.formatter.PrintRunStats(output)

	if !col.WasSuccessful() {
		return fmt.Errorf("run failed: %d failure(s), %d error(s)", len(col.Failures), len(col.Errors))
	}
	return nil
}

// readRerunLog returns the dotted identities recorded in the rerun
// log, to be reused as selector patterns.
func readRerunLog(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("--failed requires a rerun log path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read rerun log: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}

// buildOutput converts a finished collector into the persisted run
// output.
func buildOutput(col *collector.Collector, elapsed time.Duration) *domain.RunOutput {
	out := &domain.RunOutput{
		Meta: domain.RunMeta{
			TestsRun:            col.TestsRun,
			Failures:            len(col.Failures),
			Errors:              len(col.Errors),
			Skipped:             len(col.Skipped),
			ExpectedFailures:    len(col.ExpectedFailures),
			UnexpectedSuccesses: len(col.UnexpectedSuccesses),
			Duration:            elapsed.String(),
			DurationSeconds:     elapsed.Seconds(),
			Timestamp:           time.Now().Format(time.RFC3339),
		},
	}
	for _, o := range col.Failures {
		out.Details = append(out.Details, failureDetail(o, "failure"))
	}
	for _, o := range col.Errors {
		out.Details = append(out.Details, failureDetail(o, "error"))
	}
	return out
}

func failureDetail(o collector.Outcome, kind string) domain.Failure {
	message := ""
	if o.Err != nil {
		message = o.Err.Error()
	}
	return domain.Failure{
		Test:    o.Test,
		Module:  moduleOf(o.Test),
		Kind:    kind,
		Message: message,
	}
}

// moduleOf strips the class and method parts from a dotted identity.
func moduleOf(test string) string {
	parts := strings.Split(test, ".")
	if len(parts) <= 2 {
		return test
	}
	return strings.Join(parts[:len(parts)-2], ".")
}
