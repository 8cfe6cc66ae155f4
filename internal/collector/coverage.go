package collector

import (
	"fmt"
	"path/filepath"

	"gtr/internal/coverage"
)

// ReportOptions select the coverage report outputs. The three outputs
// are independent and combinable.
type ReportOptions struct {
	ToStream bool
	Save     bool
	SavePath string
	HTMLDir  string
}

// CoverageReport merges every per-test snapshot into the aggregate
// store and emits the requested outputs. It does nothing when coverage
// was never configured, and declines the stream report when per-test
// reporting is active, since the aggregate would duplicate what was
// already printed per test.
func (c *Collector) CoverageReport(opts ReportOptions) error {
	if c.tracker == nil {
		return nil
	}

	if c.verbosity > 2 && opts.ToStream {
		fmt.Fprintln(c.stream, "Sorry, overall coverage data does not work when per-test reporting is turned on.")
		return nil
	}

	data := c.coverageData()

	if opts.ToStream {
		fmt.Fprintln(c.stream, "\nOverall coverage report")
		fmt.Fprintln(c.stream, "=======================")
		fmt.Fprintln(c.stream)
		if err := c.tracker.Report(c.stream, data); err != nil {
			return err
		}
	}

	if opts.Save {
		if err := c.tracker.Save(opts.SavePath, data); err != nil {
			return err
		}
	}

	if opts.HTMLDir != "" {
		if err := c.tracker.HTML(opts.HTMLDir, data); err != nil {
			return err
		}
		dir := opts.HTMLDir
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		fmt.Fprintf(c.stream, "\nHTML coverage data is saved as file://%s/index.html\n", dir)
	}

	return nil
}

// coverageData materializes the aggregate store on first use; later
// calls reuse the merged result without recomputation.
func (c *Collector) coverageData() coverage.Data {
	if !c.covCalculated {
		fmt.Fprintln(c.stream, "Calculating overall coverage data")
		c.aggregate = coverage.Data{}
		for _, rec := range c.records {
			c.aggregate.Merge(rec.cov)
		}
		c.covCalculated = true
	}
	return c.aggregate
}
