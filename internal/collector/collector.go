package collector

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gtr/internal/coverage"
	"gtr/internal/harness"
	"gtr/internal/style"
)

// Progress receives per-test completion updates in quiet mode.
type Progress interface {
	Update(completed, passed, failed int)
}

// Outcome records one test-level outcome for the final listings.
type Outcome struct {
	Test   string // dotted identity; sub-test name appended for sub-test outcomes
	Desc   string
	Err    error
	Reason string // skip reason, set for skip outcomes only
}

// record is the per-identity bookkeeping: timing plus the coverage
// snapshot sealed at test stop.
type record struct {
	start time.Time
	stop  time.Time
	cov   coverage.Data
}

// Options configure a Collector.
type Options struct {
	Stream       io.Writer
	Descriptions bool
	Verbosity    int
	Coverage     *coverage.Tracker // nil when coverage is not configured
	RerunLog     string            // path; empty disables the rerun log
	Palette      *style.Palette
	Progress     Progress // quiet-mode progress, optional
}

// Collector implements harness.Reporter. It tallies outcomes, records
// per-test timing, manages coverage capture between test start and
// stop, writes colourised progress to the stream and maintains the
// rerun log. One instance serves exactly one run.
type Collector struct {
	stream       io.Writer
	descriptions bool
	verbosity    int
	dots         bool
	showAll      bool
	palette      *style.Palette
	tracker      *coverage.Tracker
	progress     Progress

	rerunLogName string
	rerunLog     *os.File

	separator1 string
	separator2 string

	inSubtest bool
	records   map[string]*record

	// failedCases counts parent-level failed or errored tests.
	// Failures also holds sub-test entries, which do not correspond to
	// completed tests and must not feed the progress bar.
	failedCases int

	TestsRun            int
	Failures            []Outcome
	Errors              []Outcome
	Skipped             []Outcome
	ExpectedFailures    []Outcome
	UnexpectedSuccesses []Outcome

	covCalculated bool
	aggregate     coverage.Data
}

// New builds a Collector. Opening the rerun log is the only fallible
// step; its error propagates untouched.
func New(opts Options) (*Collector, error) {
	c := &Collector{
		stream:       opts.Stream,
		descriptions: opts.Descriptions,
		verbosity:    opts.Verbosity,
		dots:         opts.Verbosity == 1,
		showAll:      opts.Verbosity > 1,
		palette:      opts.Palette,
		tracker:      opts.Coverage,
		progress:     opts.Progress,
		rerunLogName: opts.RerunLog,
		separator1:   strings.Repeat("=", 70),
		separator2:   strings.Repeat("-", 70),
		records:      map[string]*record{},
	}
	if c.stream == nil {
		c.stream = os.Stdout
	}
	if c.palette == nil {
		c.palette = style.NewPalette()
	}
	if c.rerunLogName != "" {
		f, err := os.OpenFile(c.rerunLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		c.rerunLog = f
	}
	return c, nil
}

// get returns the record for the identity, inserting a fresh one on
// first access.
func (c *Collector) get(id string) *record {
	r, ok := c.records[id]
	if !ok {
		r = &record{}
		c.records[id] = r
	}
	return r
}

// WasSuccessful reports whether the run had no failures and no errors.
func (c *Collector) WasSuccessful() bool {
	return len(c.Failures) == 0 && len(c.Errors) == 0
}

// Duration returns the recorded duration for a dotted identity, and
// whether both timestamps were recorded.
func (c *Collector) Duration(id string) (time.Duration, bool) {
	r, ok := c.records[id]
	if !ok || r.start.IsZero() || r.stop.IsZero() {
		return 0, false
	}
	return r.stop.Sub(r.start), true
}

func (c *Collector) StartRun() {}

// StopRun prints the slowest-tests block and closes the rerun log.
func (c *Collector) StopRun() {
	type slow struct {
		id string
		d  time.Duration
	}
	var list []slow
	for id, r := range c.records {
		if r.start.IsZero() || r.stop.IsZero() {
			continue
		}
		list = append(list, slow{id: id, d: r.stop.Sub(r.start)})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].d != list[j].d {
			return list[i].d > list[j].d
		}
		return list[i].id < list[j].id
	})
	if len(list) > 5 {
		list = list[:5]
	}

	if len(list) > 1 {
		fmt.Fprintf(c.stream, "\n\nThe %d slowest tests:\n\n", len(list))
		for _, s := range list {
			fmt.Fprintf(c.stream, "%s (%.5fs)\n", s.id, s.d.Seconds())
		}
	}

	if c.rerunLog != nil {
		c.rerunLog.Close()
		c.rerunLog = nil
	}
}

func (c *Collector) StartTest(t *harness.Case) {
	id := t.Identity().String()
	c.get(id).start = time.Now()
	c.TestsRun++

	c.tracker.Start()

	if c.showAll {
		fmt.Fprint(c.stream, id)
	}
}

func (c *Collector) StopTest(t *harness.Case) {
	id := t.Identity().String()
	rec := c.get(id)
	rec.stop = time.Now()

	if c.tracker != nil {
		c.tracker.Stop()
		rec.cov = c.tracker.Snapshot()
		if c.verbosity > 2 {
			fmt.Fprintln(c.stream)
			c.tracker.Report(c.stream, rec.cov)
		}
		// mandatory: the live buffer is shared across tests and must
		// start clean for the next one, whatever this test did
		c.tracker.Reset()
	}

	if c.dots && c.inSubtest {
		fmt.Fprint(c.stream, ")")
	} else if c.showAll {
		fmt.Fprintf(c.stream, " (%.5fs)\n", rec.stop.Sub(rec.start).Seconds())
	}
	c.inSubtest = false

	if c.progress != nil {
		c.progress.Update(c.TestsRun, c.TestsRun-c.failedCases, c.failedCases)
	}
}

func (c *Collector) AddSuccess(t *harness.Case) {
	c.mark(style.Success, ".", "OK", "")
}

func (c *Collector) AddFailure(t *harness.Case, err error) {
	c.failedCases++
	c.Failures = append(c.Failures, Outcome{Test: t.Identity().String(), Desc: c.description(t), Err: err})
	c.mark(style.Failure, "F", "FAILED", "")
	c.addToRerunLog(t)
}

func (c *Collector) AddError(t *harness.Case, err error) {
	c.failedCases++
	c.Errors = append(c.Errors, Outcome{Test: t.Identity().String(), Desc: c.description(t), Err: err})
	c.mark(style.Error, "E", "ERROR", "")
	c.addToRerunLog(t)
}

func (c *Collector) AddSkip(t *harness.Case, reason string) {
	if reason == "" {
		reason = "No reason"
	}
	c.Skipped = append(c.Skipped, Outcome{Test: t.Identity().String(), Desc: c.description(t), Reason: reason})
	c.mark(style.Skip, "s", "skipped", " ("+reason+")")
}

func (c *Collector) AddExpectedFailure(t *harness.Case, err error) {
	c.ExpectedFailures = append(c.ExpectedFailures, Outcome{Test: t.Identity().String(), Desc: c.description(t), Err: err})
	c.mark(style.ExpectedFailure, "x", "expected failure", "")
}

func (c *Collector) AddUnexpectedSuccess(t *harness.Case) {
	c.UnexpectedSuccesses = append(c.UnexpectedSuccesses, Outcome{Test: t.Identity().String(), Desc: c.description(t)})
	c.mark(style.UnexpectedSuccess, "u", "unexpected success", "")
}

// AddSubTest renders a sub-test outcome and tallies its failure
// separately from the parent's own outcome. The first sub-test event
// of a case flips the in-subtest flag so a later parent-level outcome
// is prefixed with "Final outcome:".
func (c *Collector) AddSubTest(t *harness.Case, sub *harness.SubTest, err error) {
	name := t.Identity().String() + "." + sub.Name
	if err != nil {
		c.Failures = append(c.Failures, Outcome{Test: name, Desc: name, Err: err})
	}

	if c.dots {
		if !c.inSubtest {
			fmt.Fprint(c.stream, "(")
		}
		s := style.Success
		if err != nil {
			s = style.Failure
		}
		fmt.Fprint(c.stream, c.palette.Wrap(s, ":"))
	} else if c.showAll {
		if !c.inSubtest {
			fmt.Fprintln(c.stream)
		}
		marker := c.palette.Wrap(style.Success, "OK")
		if err != nil {
			marker = c.palette.Wrap(style.Failure, "failed")
		}
		fmt.Fprintf(c.stream, "    Subtest %s [%s]\n", sub.Name, marker)
	}

	c.inSubtest = true
}

// mark writes the outcome indicator: a single glyph in dot mode, a
// bracketed marker in detailed mode. Quiet mode writes nothing.
func (c *Collector) mark(s style.Style, glyph, label, extra string) {
	if c.dots {
		fmt.Fprint(c.stream, c.palette.Wrap(s, glyph))
		return
	}
	if !c.showAll {
		return
	}
	if c.inSubtest {
		fmt.Fprint(c.stream, "Final outcome:")
	}
	fmt.Fprintf(c.stream, " [%s]%s", c.palette.Wrap(s, label), extra)
}

// description returns the dotted name of a case, joined with its short
// description when descriptions are enabled.
func (c *Collector) description(t *harness.Case) string {
	if c.descriptions && t.Description() != "" {
		return t.Identity().String() + "\n" + t.Description()
	}
	return t.Identity().String()
}

// addToRerunLog appends the dotted identity, one per line. Identities
// of synthetic failed-to-load cases are stripped back to the real
// module name; compatibility shim tied to the loader's naming.
func (c *Collector) addToRerunLog(t *harness.Case) {
	if c.rerunLog == nil {
		return
	}
	id := t.Identity().String()
	id = strings.TrimPrefix(id, harness.FailedTestPrefix)
	fmt.Fprintln(c.rerunLog, id)
}

// PrintErrors writes the detailed ERROR and FAIL listings.
func (c *Collector) PrintErrors() {
	if c.dots || c.showAll {
		fmt.Fprintln(c.stream)
	}
	c.printErrorList("ERROR", c.Errors)
	c.printErrorList("FAIL", c.Failures)
}

func (c *Collector) printErrorList(flavour string, list []Outcome) {
	for _, o := range list {
		fmt.Fprintln(c.stream, c.separator1)
		fmt.Fprintf(c.stream, "%s: %s\n", flavour, o.Desc)
		fmt.Fprintln(c.stream, c.separator2)
		fmt.Fprintln(c.stream, o.Err)
	}
}
