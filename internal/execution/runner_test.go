package execution

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gtr/internal/config"
	"gtr/internal/harness"
)

func passingCase(method string) *harness.Case {
	return &harness.Case{Module: "m", Class: "C", Method: method, Func: func(ctl *harness.Control) {}}
}

func TestRunner_Run_AllPassing(t *testing.T) {
	suite := harness.NewSuite(passingCase("t1"), passingCase("t2"))

	var buf bytes.Buffer
	cfg := config.New()
	runner := NewRunner(cfg, &buf)

	col, elapsed, err := runner.Run(suite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !col.WasSuccessful() {
		t.Error("expected a successful run")
	}
	if elapsed < 0 {
		t.Errorf("expected non-negative duration, got %v", elapsed)
	}

	out := buf.String()
	if !strings.Contains(out, "Ran 2 test(s) in ") {
		t.Errorf("expected the run summary, got %q", out)
	}
	if !strings.Contains(out, "\nOK\n") {
		t.Errorf("expected the OK verdict, got %q", out)
	}
	if !strings.Contains(out, strings.Repeat("-", 70)) {
		t.Errorf("expected the summary separator, got %q", out)
	}
}

func TestRunner_Run_MixedOutcomes(t *testing.T) {
	suite := harness.NewSuite(
		passingCase("t1"),
		&harness.Case{Module: "m", Class: "C", Method: "t2", Func: func(ctl *harness.Control) {
			ctl.Failf("mismatch")
		}},
		&harness.Case{Module: "m", Class: "C", Method: "t3", Func: func(ctl *harness.Control) {
			ctl.Skip("later")
		}},
	)

	var buf bytes.Buffer
	runner := NewRunner(config.New(), &buf)

	col, _, err := runner.Run(suite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.WasSuccessful() {
		t.Error("expected an unsuccessful run")
	}

	out := buf.String()
	if !strings.Contains(out, "Ran 3 test(s) in ") {
		t.Errorf("expected the run summary, got %q", out)
	}
	if !strings.Contains(out, "FAILED (failures=1, skipped=1)") {
		t.Errorf("expected the FAILED verdict with counts, got %q", out)
	}
	if !strings.Contains(out, "FAIL: m.C.t2") {
		t.Errorf("expected the failure listing, got %q", out)
	}
}

func TestRunner_Run_ErrorListing(t *testing.T) {
	suite := harness.NewSuite(
		&harness.Case{Module: "m", Class: "C", Method: "t1", Func: func(ctl *harness.Control) {
			ctl.Errorf("exploded: %v", errors.New("nil dereference"))
		}},
	)

	var buf bytes.Buffer
	col, _, err := NewRunner(config.New(), &buf).Run(suite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(col.Errors))
	}

	out := buf.String()
	if !strings.Contains(out, "ERROR: m.C.t1") {
		t.Errorf("expected the error listing, got %q", out)
	}
	if !strings.Contains(out, "FAILED (errors=1)") {
		t.Errorf("expected the FAILED verdict, got %q", out)
	}
}

func TestRunner_Run_BadCoveragePath(t *testing.T) {
	cfg := config.New()
	cfg.CoverageDirs = []string{"does/not/exist"}

	var buf bytes.Buffer
	_, _, err := NewRunner(cfg, &buf).Run(harness.NewSuite(passingCase("t1")))
	if err == nil || !strings.Contains(err.Error(), "source path does not exist") {
		t.Errorf("expected a source path error, got %v", err)
	}
}
