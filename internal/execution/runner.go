package execution

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gtr/internal/collector"
	"gtr/internal/config"
	"gtr/internal/coverage"
	"gtr/internal/harness"
	"gtr/internal/ui"
)

// Runner wires a Collector to the harness run loop and renders the
// closing summary.
type Runner struct {
	config *config.Config
	stream io.Writer
}

// NewRunner creates a new Runner writing to stream; a nil stream means
// stdout.
func NewRunner(cfg *config.Config, stream io.Writer) *Runner {
	if stream == nil {
		stream = os.Stdout
	}
	return &Runner{config: cfg, stream: stream}
}

// Run executes the suite and returns the collector holding the
// aggregate result together with the wall-clock duration.
func (r *Runner) Run(suite *harness.Suite) (*collector.Collector, time.Duration, error) {
	var tracker *coverage.Tracker
	if len(r.config.CoverageDirs) > 0 {
		sources, err := coverage.CollectSources(r.config.CoverageDirs, r.config.PathsToIgnore)
		if err != nil {
			return nil, 0, err
		}
		tracker = coverage.New(sources)
	}

	var bar *ui.ProgressBar
	if r.config.Verbosity == 0 {
		bar = ui.NewProgressBar(suite.Count())
	}

	opts := collector.Options{
		Stream:       r.stream,
		Descriptions: r.config.Descriptions,
		Verbosity:    r.config.Verbosity,
		Coverage:     tracker,
		RerunLog:     r.config.RerunLog,
	}
	if bar != nil {
		opts.Progress = bar
	}
	col, err := collector.New(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("open rerun log: %w", err)
	}

	start := time.Now()
	harness.Run(suite, col)
	elapsed := time.Since(start)

	if bar != nil {
		bar.Finish()
	}

	col.PrintErrors()
	r.printSummary(col, elapsed)

	logrus.WithFields(logrus.Fields{
		"tests":    col.TestsRun,
		"failures": len(col.Failures),
		"errors":   len(col.Errors),
		"duration": elapsed.Round(time.Millisecond).String(),
	}).Info("test run finished")

	return col, elapsed, nil
}

// printSummary writes the closing "Ran N tests" block.
func (r *Runner) printSummary(col *collector.Collector, elapsed time.Duration) {
	fmt.Fprintln(r.stream, strings.Repeat("-", 70))
	fmt.Fprintf(r.stream, "Ran %d test(s) in %.3fs\n\n", col.TestsRun, elapsed.Seconds())

	var parts []string
	if n := len(col.Failures); n > 0 {
		parts = append(parts, fmt.Sprintf("failures=%d", n))
	}
	if n := len(col.Errors); n > 0 {
		parts = append(parts, fmt.Sprintf("errors=%d", n))
	}
	if n := len(col.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("skipped=%d", n))
	}
	if n := len(col.ExpectedFailures); n > 0 {
		parts = append(parts, fmt.Sprintf("expected failures=%d", n))
	}
	if n := len(col.UnexpectedSuccesses); n > 0 {
		parts = append(parts, fmt.Sprintf("unexpected successes=%d", n))
	}

	verdict := "OK"
	if !col.WasSuccessful() {
		verdict = "FAILED"
	}
	if len(parts) > 0 {
		fmt.Fprintf(r.stream, "%s (%s)\n", verdict, strings.Join(parts, ", "))
	} else {
		fmt.Fprintf(r.stream, "%s\n", verdict)
	}
}
